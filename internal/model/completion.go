package model

import (
	"time"

	"gorm.io/gorm"
)

// CompletionRecord is written by the completion pipeline when a developer
// finishes a module. Immutable once created; the insight aggregates read
// study time and submission ratings from here.
type CompletionRecord struct {
	ID                   string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	JourneyID            string    `gorm:"size:50;index;not null" json:"journeyId"`
	DeveloperID          string    `gorm:"size:50;index;not null" json:"developerId"`
	StudyDurationSeconds int64     `gorm:"not null;default:0" json:"studyDurationSeconds"`
	AvgSubmissionRating  float64   `gorm:"not null;default:0" json:"avgSubmissionRating"` // 0-5 scale
	CreatedAt            time.Time `gorm:"index" json:"createdAt"`
}

func (CompletionRecord) TableName() string {
	return "developer_journey_completions"
}

func (c *CompletionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = NewID("completion")
	}
	return
}
