package model

import "time"

// LearnerClusterAssignment is the persisted output of the classification
// pipeline. At most one row per user; upserted on every re-classification
// and treated as the authoritative learning-style source by the persona
// resolver.
type LearnerClusterAssignment struct {
	UserID      string    `gorm:"primaryKey;type:varchar(50)" json:"userId"`
	Cluster     int       `gorm:"not null" json:"cluster"`
	LearnerType string    `gorm:"size:50;not null" json:"learnerType"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (LearnerClusterAssignment) TableName() string {
	return "user_learning_clusters"
}
