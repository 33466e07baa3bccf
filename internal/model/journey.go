package model

import (
	"time"

	"gorm.io/gorm"
)

// Journey is a course: a sequence of tutorials owned by one instructor.
type Journey struct {
	ID           string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Difficulty   string    `gorm:"size:20" json:"difficulty"`
	InstructorID string    `gorm:"size:50;index" json:"instructorId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Journey) TableName() string {
	return "developer_journeys"
}

func (j *Journey) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == "" {
		j.ID = NewID("journey")
	}
	return
}

// Tutorial is a single unit of material within a journey.
type Tutorial struct {
	ID        string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	JourneyID string    `gorm:"size:50;index;not null" json:"journeyId"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tutorial) TableName() string {
	return "developer_journey_tutorials"
}

func (t *Tutorial) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = NewID("tutorial")
	}
	return
}
