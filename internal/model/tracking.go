package model

import (
	"time"

	"gorm.io/gorm"
)

type TrackingStatus string

const (
	TrackingInProgress TrackingStatus = "in_progress"
	TrackingCompleted  TrackingStatus = "completed"
)

// TrackingRecord logs that a developer viewed a tutorial. There is at most
// one row per (developer, tutorial) pair; re-viewing only advances
// LastViewedAt. The unique index makes the upsert atomic under concurrent
// requests for the same pair.
type TrackingRecord struct {
	ID            string         `gorm:"primaryKey;type:varchar(50)" json:"id"`
	JourneyID     string         `gorm:"size:50;index;not null" json:"journeyId"`
	TutorialID    string         `gorm:"size:50;not null;uniqueIndex:idx_developer_tutorial,priority:2" json:"tutorialId"`
	DeveloperID   string         `gorm:"size:50;not null;uniqueIndex:idx_developer_tutorial,priority:1" json:"developerId"`
	Status        TrackingStatus `gorm:"size:20;default:'in_progress'" json:"status"`
	FirstOpenedAt time.Time      `gorm:"not null" json:"firstOpenedAt"`
	LastViewedAt  time.Time      `gorm:"column:last_viewed;not null;index" json:"lastViewedAt"`
}

func (TrackingRecord) TableName() string {
	return "developer_journey_trackings"
}

func (t *TrackingRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = NewID("track")
	}
	return
}
