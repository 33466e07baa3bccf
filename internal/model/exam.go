package model

import (
	"time"

	"gorm.io/gorm"
)

type ExamRegistration struct {
	ID          string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	ExamID      string    `gorm:"size:50;index" json:"examId"`
	ExamineesID string    `gorm:"size:50;index;not null" json:"examineesId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (ExamRegistration) TableName() string {
	return "exam_registrations"
}

func (e *ExamRegistration) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = NewID("examreg")
	}
	return
}

type ExamResult struct {
	ID                 string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	ExamRegistrationID string    `gorm:"size:50;index;not null" json:"examRegistrationId"`
	Score              float64   `gorm:"not null;default:0" json:"score"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

func (e *ExamResult) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = NewID("examresult")
	}
	return
}
