package service

import (
	"testing"
	"time"

	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/A25-CS206/backend-service/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTrackingService(t *testing.T) (*TrackingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewTrackingService(
		repository.NewTrackingRepository(db),
		repository.NewJourneyRepository(db),
		repository.NewCompletionRepository(db),
	)
	return svc, db
}

func TestRecordViewValidatesReferences(t *testing.T) {
	svc, db := newTrackingService(t)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A")
	other, _ := seedJourney(t, db, "Frontend Basics", "X")

	_, err := svc.RecordView("user-1", "journey-missing", tutorials[0].ID)
	assert.ErrorIs(t, err, util.ErrJourneyNotFound)

	_, err = svc.RecordView("user-1", journey.ID, "tutorial-missing")
	assert.ErrorIs(t, err, util.ErrTutorialNotFound)

	// Tutorial exists but belongs to a different journey.
	_, err = svc.RecordView("user-1", other.ID, tutorials[0].ID)
	assert.ErrorIs(t, err, util.ErrTutorialNotFound)
}

func TestRecordViewReturnsSameIDOnRepeat(t *testing.T) {
	svc, db := newTrackingService(t)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A")

	id1, err := svc.RecordView("user-1", journey.ID, tutorials[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := svc.RecordView("user-1", journey.ID, tutorials[0].ID)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	var count int64
	require.NoError(t, db.Model(&model.TrackingRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetMyCoursesProgress(t *testing.T) {
	svc, db := newTrackingService(t)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A", "B", "C")

	ref := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)
	repo := repository.NewTrackingRepository(db)
	_, _, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, ref.Add(-26*time.Hour))
	require.NoError(t, err)
	_, _, err = repo.UpsertView("user-1", journey.ID, tutorials[1].ID, ref.Add(-25*time.Hour))
	require.NoError(t, err)

	courses, err := svc.GetMyCourses("user-1", ref)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	course := courses[0]
	assert.Equal(t, journey.ID, course.ID)
	assert.Equal(t, "Backend Basics", course.Title)
	assert.Equal(t, "in_progress", course.Status)
	assert.Equal(t, 67, course.Progress, "2 of 3 tutorials rounds to 67")
	assert.Equal(t, int64(3), course.Modules)
	assert.Equal(t, "1 day ago", course.LastOpened)
	assert.Nil(t, course.CompletedAt)
}

func TestGetMyCoursesCompleted(t *testing.T) {
	svc, db := newTrackingService(t)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A", "B")

	ref := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)
	repo := repository.NewTrackingRepository(db)
	_, _, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, ref.Add(-time.Hour))
	require.NoError(t, err)

	completion := model.CompletionRecord{
		JourneyID:            journey.ID,
		DeveloperID:          "user-1",
		StudyDurationSeconds: 3600,
		CreatedAt:            ref.Add(-30 * time.Minute),
	}
	require.NoError(t, db.Create(&completion).Error)

	courses, err := svc.GetMyCourses("user-1", ref)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	course := courses[0]
	assert.Equal(t, "completed", course.Status)
	assert.Equal(t, 100, course.Progress, "completion overrides the viewed ratio")
	require.NotNil(t, course.CompletedAt)
	assert.WithinDuration(t, completion.CreatedAt, *course.CompletedAt, time.Second)
}
