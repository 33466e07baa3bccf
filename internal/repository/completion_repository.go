package repository

import (
	"time"

	"github.com/A25-CS206/backend-service/internal/model"
	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

func (r *CompletionRepository) Create(completion *model.CompletionRecord) error {
	return r.DB.Create(completion).Error
}

// WindowAggregate holds the raw sums for one half-open time window.
// COALESCE keeps every field at 0 when no rows match.
type WindowAggregate struct {
	TotalSeconds     int64   `json:"totalSeconds"`
	ModulesCompleted int64   `json:"modulesCompleted"`
	AvgRating        float64 `json:"avgRating"`
}

func (r *CompletionRepository) AggregateWindow(userID string, start, end time.Time) (WindowAggregate, error) {
	var agg WindowAggregate
	err := r.DB.Model(&model.CompletionRecord{}).
		Select("COALESCE(SUM(study_duration_seconds), 0) as total_seconds, "+
			"COUNT(id) as modules_completed, "+
			"COALESCE(AVG(avg_submission_rating), 0) as avg_rating").
		Where("developer_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Scan(&agg).Error
	return agg, err
}

func (r *CompletionRepository) TotalStudySeconds(userID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.CompletionRecord{}).
		Select("COALESCE(SUM(study_duration_seconds), 0)").
		Where("developer_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *CompletionRepository) CountForUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CompletionRecord{}).Where("developer_id = ?", userID).Count(&count).Error
	return count, err
}

// CompletedJourneyAt returns the completion time for one journey, or
// gorm.ErrRecordNotFound when the journey was never completed.
func (r *CompletionRepository) CompletedJourneyAt(userID, journeyID string) (time.Time, error) {
	var completion model.CompletionRecord
	err := r.DB.Where("developer_id = ? AND journey_id = ?", userID, journeyID).
		Order("created_at DESC").
		First(&completion).Error
	if err != nil {
		return time.Time{}, err
	}
	return completion.CreatedAt, nil
}
