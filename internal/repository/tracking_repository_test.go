package repository

import (
	"testing"
	"time"

	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUpsertViewIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackingRepository(db)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "Intro", "Routing")

	first := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Minute)

	id1, affected, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, first)
	require.NoError(t, err)
	assert.NotEmpty(t, id1)
	assert.Positive(t, affected)

	id2, affected, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, second)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Positive(t, affected)

	var count int64
	require.NoError(t, db.Model(&model.TrackingRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	record, err := repo.FindByUserAndTutorial("user-1", tutorials[0].ID)
	require.NoError(t, err)
	assert.WithinDuration(t, first, record.FirstOpenedAt, time.Second, "first open must survive re-views")
	assert.WithinDuration(t, second, record.LastViewedAt, time.Second, "last view must advance")
	assert.Equal(t, model.TrackingInProgress, record.Status)
}

func TestUpsertViewSeparateRecordsPerTutorial(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackingRepository(db)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "Intro", "Routing")

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	id1, _, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, now)
	require.NoError(t, err)
	id2, _, err := repo.UpsertView("user-1", journey.ID, tutorials[1].ID, now)
	require.NoError(t, err)
	id3, _, err := repo.UpsertView("user-2", journey.ID, tutorials[0].ID, now)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.NotEqual(t, id1, id3)

	var count int64
	require.NoError(t, db.Model(&model.TrackingRecord{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestCountActiveDays(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackingRepository(db)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A", "B", "C")

	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_, _, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, day1)
	require.NoError(t, err)
	_, _, err = repo.UpsertView("user-1", journey.ID, tutorials[1].ID, day1.Add(2*time.Hour))
	require.NoError(t, err)
	_, _, err = repo.UpsertView("user-1", journey.ID, tutorials[2].ID, day2)
	require.NoError(t, err)

	count, err := repo.CountActiveDays("user-1", day1.AddDate(0, 0, -1), day2.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "two views on the same date count once")

	count, err = repo.CountActiveDays("user-1", day2, day2.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountActiveDays("user-other", day1, day2)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLatestWithTitles(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackingRepository(db)
	journey, tutorials := seedJourney(t, db, "Cloud Fundamentals", "VMs", "Containers")

	_, err := repo.LatestWithTitles("user-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, _, err = repo.UpsertView("user-1", journey.ID, tutorials[0].ID, base)
	require.NoError(t, err)
	_, _, err = repo.UpsertView("user-1", journey.ID, tutorials[1].ID, base.Add(time.Hour))
	require.NoError(t, err)

	row, err := repo.LatestWithTitles("user-1")
	require.NoError(t, err)
	assert.Equal(t, "Cloud Fundamentals", row.JourneyName)
	assert.Equal(t, "Containers", row.TutorialTitle)
	assert.Equal(t, tutorials[1].ID, row.TutorialID)
}

func TestCourseRollups(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackingRepository(db)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A", "B", "C")

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, _, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, base)
	require.NoError(t, err)
	_, _, err = repo.UpsertView("user-1", journey.ID, tutorials[1].ID, base.Add(time.Hour))
	require.NoError(t, err)

	rollups, err := repo.CourseRollups("user-1")
	require.NoError(t, err)
	require.Len(t, rollups, 1)
	assert.Equal(t, journey.ID, rollups[0].JourneyID)
	assert.Equal(t, "Backend Basics", rollups[0].JourneyName)
	assert.Equal(t, int64(2), rollups[0].ViewedCount)
	assert.Equal(t, int64(3), rollups[0].TotalTutorials)
	assert.WithinDuration(t, base.Add(time.Hour), rollups[0].LastViewedAt, time.Second)
}

func TestActivityHistoryOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackingRepository(db)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A", "B")

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, _, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, base)
	require.NoError(t, err)
	_, _, err = repo.UpsertView("user-1", journey.ID, tutorials[1].ID, base.Add(time.Hour))
	require.NoError(t, err)

	rows, err := repo.ActivityHistory("user-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].TutorialTitle, "most recent first")
	assert.Equal(t, "A", rows[1].TutorialTitle)
}
