package repository

import (
	"github.com/A25-CS206/backend-service/internal/model"
	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// AverageScore averages a user's exam scores (0-100 scale), 0 when the user
// has never taken an exam.
func (r *ExamRepository) AverageScore(userID string) (float64, error) {
	var avg float64
	err := r.DB.Table("exam_results r").
		Select("COALESCE(AVG(r.score), 0)").
		Joins("JOIN exam_registrations reg ON r.exam_registration_id = reg.id").
		Where("reg.examinees_id = ?", userID).
		Scan(&avg).Error
	return avg, err
}

func (r *ExamRepository) CountSessions(userID string) (int64, error) {
	var count int64
	err := r.DB.Table("exam_results r").
		Joins("JOIN exam_registrations reg ON r.exam_registration_id = reg.id").
		Where("reg.examinees_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ExamRepository) CreateRegistration(registration *model.ExamRegistration) error {
	return r.DB.Create(registration).Error
}

func (r *ExamRepository) CreateResult(result *model.ExamResult) error {
	return r.DB.Create(result).Error
}
