package service

import (
	"context"
	"testing"
	"time"

	"github.com/A25-CS206/backend-service/internal/config"
	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	trackingRepo := repository.NewTrackingRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	examRepo := repository.NewExamRepository(db)
	clusterRepo := repository.NewClusterRepository(db)
	classifier := NewClassifierService(config.ClassifierConfig{TimeoutSeconds: 1})

	insight := NewInsightService(trackingRepo, completionRepo, examRepo, clusterRepo, classifier)
	persona := NewPersonaService(clusterRepo, classifier)
	return NewDashboardService(insight, persona, trackingRepo), db
}

func TestBuildDashboardNewUser(t *testing.T) {
	svc, _ := newDashboardService(t)

	ref := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC) // a Sunday
	view, err := svc.BuildDashboard(context.Background(), "user-1", ref)
	require.NoError(t, err)

	assert.Equal(t, "Reflective Learner", view.LearningStyleDetection.Label)
	assert.Equal(t, 0.60, view.LearningStyleDetection.Confidence)

	require.Len(t, view.MetricsCards, 4)
	assert.Equal(t, "0.0", view.MetricsCards[0].Value)
	assert.Equal(t, "+0.0h vs last week", view.MetricsCards[0].Comparison)
	assert.Equal(t, "0", view.MetricsCards[1].Value)
	assert.Equal(t, "0", view.MetricsCards[2].Value, "no quizzes renders as zero, not null")
	assert.Equal(t, "0%", view.MetricsCards[3].Value)
	assert.Equal(t, "0 of 7 days active", view.MetricsCards[3].Comparison)

	require.Len(t, view.LearningTrendChart, 7)
	for _, point := range view.LearningTrendChart {
		assert.Zero(t, point.Hours)
	}

	assert.Equal(t, "start", view.TodaysRecommendation.Type)
	assert.Empty(t, view.TodaysRecommendation.JourneyTitle)
	assert.Equal(t, "Start your learning journey today!", view.TodaysRecommendation.Message.EN)
	assert.NotEmpty(t, view.ModuleRecommendations)
}

func TestBuildDashboardWeekOverWeekDeltas(t *testing.T) {
	svc, db := newDashboardService(t)

	ref := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)
	currentStart := ref.AddDate(0, 0, -7)
	previousStart := ref.AddDate(0, 0, -14)

	// Current window: 10h of study, 2 modules, rating 4.0.
	// Previous window: 12.5h, 3 modules, rating 3.5.
	records := []model.CompletionRecord{
		{JourneyID: "j1", DeveloperID: "user-1", StudyDurationSeconds: 18000, AvgSubmissionRating: 4.0, CreatedAt: currentStart.Add(time.Hour)},
		{JourneyID: "j1", DeveloperID: "user-1", StudyDurationSeconds: 18000, AvgSubmissionRating: 4.0, CreatedAt: currentStart.Add(2 * time.Hour)},
		{JourneyID: "j1", DeveloperID: "user-1", StudyDurationSeconds: 15000, AvgSubmissionRating: 3.5, CreatedAt: previousStart.Add(time.Hour)},
		{JourneyID: "j1", DeveloperID: "user-1", StudyDurationSeconds: 15000, AvgSubmissionRating: 3.5, CreatedAt: previousStart.Add(2 * time.Hour)},
		{JourneyID: "j1", DeveloperID: "user-1", StudyDurationSeconds: 15000, AvgSubmissionRating: 3.5, CreatedAt: previousStart.Add(3 * time.Hour)},
	}
	for i := range records {
		require.NoError(t, db.Create(&records[i]).Error)
	}

	view, err := svc.BuildDashboard(context.Background(), "user-1", ref)
	require.NoError(t, err)
	require.Len(t, view.MetricsCards, 4)

	hours := view.MetricsCards[0]
	assert.Equal(t, "10.0", hours.Value)
	assert.Equal(t, "-2.5h vs last week", hours.Comparison)

	modules := view.MetricsCards[1]
	assert.Equal(t, "2", modules.Value)
	assert.Equal(t, "-1 vs last week", modules.Comparison)

	score := view.MetricsCards[2]
	assert.Equal(t, "80", score.Value, "4.0 of 5 renders as 80 of 100")
	assert.Equal(t, "+10.0 vs last week", score.Comparison)
}

func TestBuildDashboardResumeRecommendation(t *testing.T) {
	svc, db := newDashboardService(t)
	journey, tutorials := seedJourney(t, db, "Cloud Fundamentals", "Intro to VMs")

	ref := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)
	repo := repository.NewTrackingRepository(db)
	_, _, err := repo.UpsertView("user-1", journey.ID, tutorials[0].ID, ref.Add(-2*time.Hour))
	require.NoError(t, err)

	view, err := svc.BuildDashboard(context.Background(), "user-1", ref)
	require.NoError(t, err)

	rec := view.TodaysRecommendation
	assert.Equal(t, "resume", rec.Type)
	assert.Equal(t, "Cloud Fundamentals", rec.JourneyTitle)
	assert.Equal(t, "Intro to VMs", rec.TutorialTitle)
	assert.Equal(t, "Keep the momentum!", rec.Message.EN)
	assert.Equal(t, "Lanjutkan momentummu!", rec.Message.ID)
}

func TestBuildDashboardConsistencyCard(t *testing.T) {
	svc, db := newDashboardService(t)
	journey, tutorials := seedJourney(t, db, "Backend Basics", "A", "B", "C")

	ref := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)
	repo := repository.NewTrackingRepository(db)
	for i := 0; i < 3; i++ {
		_, _, err := repo.UpsertView("user-1", journey.ID, tutorials[i].ID, ref.AddDate(0, 0, -i-1))
		require.NoError(t, err)
	}

	view, err := svc.BuildDashboard(context.Background(), "user-1", ref)
	require.NoError(t, err)

	consistency := view.MetricsCards[3]
	assert.Equal(t, "43%", consistency.Value, "3 of 7 days rounds to 43 percent")
	assert.Equal(t, "3 of 7 days active", consistency.Comparison)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0", formatScore(0))
	assert.Equal(t, "80", formatScore(4.0))
	assert.Equal(t, "100", formatScore(5.0))
	assert.Equal(t, "90", formatScore(4.5))
	assert.Equal(t, "87", formatScore(4.33))
}

func TestFormatDeltas(t *testing.T) {
	assert.Equal(t, "+2.5h vs last week", formatHoursDelta(2.5))
	assert.Equal(t, "-2.5h vs last week", formatHoursDelta(-2.5))
	assert.Equal(t, "+0.0h vs last week", formatHoursDelta(0))
	assert.Equal(t, "+3 vs last week", formatCountDelta(3))
	assert.Equal(t, "-1 vs last week", formatCountDelta(-1))
	assert.Equal(t, "+0 vs last week", formatCountDelta(0))
	assert.Equal(t, "+10.0 vs last week", formatScoreDelta(0.5))
}
