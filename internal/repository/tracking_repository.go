package repository

import (
	"time"

	"github.com/A25-CS206/backend-service/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrackingRepository struct {
	DB *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{DB: db}
}

// UpsertView records a view as a single atomic statement: insert a fresh
// in_progress row, or on conflict with the (developer_id, tutorial_id)
// unique index advance last_viewed only. first_opened_at and status are
// never touched on the update branch.
func (r *TrackingRepository) UpsertView(userID, journeyID, tutorialID string, now time.Time) (string, int64, error) {
	record := &model.TrackingRecord{
		JourneyID:     journeyID,
		TutorialID:    tutorialID,
		DeveloperID:   userID,
		Status:        model.TrackingInProgress,
		FirstOpenedAt: now,
		LastViewedAt:  now,
	}

	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "developer_id"}, {Name: "tutorial_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_viewed": now}),
	}).Create(record)
	if result.Error != nil {
		return "", 0, result.Error
	}

	// The generated id is discarded when the insert hits the conflict
	// branch, so read the surviving row's id back.
	var existing model.TrackingRecord
	err := r.DB.Select("id").
		Where("developer_id = ? AND tutorial_id = ?", userID, tutorialID).
		First(&existing).Error
	if err != nil {
		return "", result.RowsAffected, err
	}

	return existing.ID, result.RowsAffected, nil
}

func (r *TrackingRepository) FindByUserAndTutorial(userID, tutorialID string) (*model.TrackingRecord, error) {
	var record model.TrackingRecord
	err := r.DB.Where("developer_id = ? AND tutorial_id = ?", userID, tutorialID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindInWindow returns every tracking row whose last view falls inside
// [start, end), for per-day bucketing by the insight service.
func (r *TrackingRepository) FindInWindow(userID string, start, end time.Time) ([]model.TrackingRecord, error) {
	var records []model.TrackingRecord
	err := r.DB.
		Where("developer_id = ? AND last_viewed >= ? AND last_viewed < ?", userID, start, end).
		Find(&records).Error
	return records, err
}

// CountActiveDays counts distinct calendar dates with at least one view
// inside [start, end).
func (r *TrackingRepository) CountActiveDays(userID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TrackingRecord{}).
		Where("developer_id = ? AND last_viewed >= ? AND last_viewed < ?", userID, start, end).
		Select("COUNT(DISTINCT DATE(last_viewed))").
		Scan(&count).Error
	return count, err
}

func (r *TrackingRepository) CountForUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TrackingRecord{}).Where("developer_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *TrackingRepository) CountActiveDaysAllTime(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TrackingRecord{}).
		Where("developer_id = ?", userID).
		Select("COUNT(DISTINCT DATE(last_viewed))").
		Scan(&count).Error
	return count, err
}

func (r *TrackingRepository) FirstOpened(userID string) (*model.TrackingRecord, error) {
	var record model.TrackingRecord
	err := r.DB.Where("developer_id = ?", userID).Order("first_opened_at ASC").First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *TrackingRepository) LastViewed(userID string) (*model.TrackingRecord, error) {
	var record model.TrackingRecord
	err := r.DB.Where("developer_id = ?", userID).Order("last_viewed DESC").First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ActivityRow is a history entry with journey and tutorial titles joined in.
type ActivityRow struct {
	ID            string                `json:"id"`
	JourneyName   string                `json:"journeyName"`
	TutorialTitle string                `json:"tutorialTitle"`
	Status        model.TrackingStatus  `json:"status"`
	LastViewedAt  time.Time             `json:"lastViewedAt" gorm:"column:last_viewed"`
}

func (r *TrackingRepository) ActivityHistory(userID string) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := r.DB.Table("developer_journey_trackings t").
		Select("t.id, j.name as journey_name, tut.title as tutorial_title, t.status, t.last_viewed").
		Joins("JOIN developer_journeys j ON t.journey_id = j.id").
		Joins("JOIN developer_journey_tutorials tut ON t.tutorial_id = tut.id").
		Where("t.developer_id = ?", userID).
		Order("t.last_viewed DESC").
		Scan(&rows).Error
	return rows, err
}

// ResumeRow is the single most recent view, used for the dashboard's
// "continue where you left off" recommendation.
type ResumeRow struct {
	TrackingID    string    `json:"trackingId"`
	JourneyID     string    `json:"journeyId"`
	JourneyName   string    `json:"journeyName"`
	TutorialID    string    `json:"tutorialId"`
	TutorialTitle string    `json:"tutorialTitle"`
	LastViewedAt  time.Time `json:"lastViewedAt" gorm:"column:last_viewed"`
}

func (r *TrackingRepository) LatestWithTitles(userID string) (*ResumeRow, error) {
	var row ResumeRow
	err := r.DB.Table("developer_journey_trackings t").
		Select("t.id as tracking_id, t.journey_id, j.name as journey_name, t.tutorial_id, tut.title as tutorial_title, t.last_viewed").
		Joins("JOIN developer_journeys j ON t.journey_id = j.id").
		Joins("JOIN developer_journey_tutorials tut ON t.tutorial_id = tut.id").
		Where("t.developer_id = ?", userID).
		Order("t.last_viewed DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.TrackingID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// CourseRollup aggregates a user's trackings per journey for /my-courses.
type CourseRollup struct {
	JourneyID      string    `json:"journeyId"`
	JourneyName    string    `json:"journeyName"`
	ViewedCount    int64     `json:"viewedCount"`
	TotalTutorials int64     `json:"totalTutorials"`
	LastViewedAt   time.Time `json:"lastViewedAt" gorm:"column:last_viewed"`
}

func (r *TrackingRepository) CourseRollups(userID string) ([]CourseRollup, error) {
	var rollups []CourseRollup
	err := r.DB.Table("developer_journey_trackings t").
		Select("j.id as journey_id, j.name as journey_name, COUNT(t.id) as viewed_count, "+
			"MAX(t.last_viewed) as last_viewed, "+
			"(SELECT COUNT(*) FROM developer_journey_tutorials tut WHERE tut.journey_id = j.id) as total_tutorials").
		Joins("JOIN developer_journeys j ON t.journey_id = j.id").
		Where("t.developer_id = ?", userID).
		Group("j.id, j.name").
		Order("MAX(t.last_viewed) DESC").
		Scan(&rollups).Error
	return rollups, err
}
