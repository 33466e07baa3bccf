package service

import (
	"os"
	"testing"

	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Journey{},
		&model.Tutorial{},
		&model.TrackingRecord{},
		&model.CompletionRecord{},
		&model.ExamRegistration{},
		&model.ExamResult{},
		&model.LearnerClusterAssignment{},
	)
	require.NoError(t, err)

	return db
}

func seedJourney(t *testing.T, db *gorm.DB, name string, tutorialTitles ...string) (*model.Journey, []model.Tutorial) {
	t.Helper()

	journey := &model.Journey{Name: name, InstructorID: "user-instructor"}
	require.NoError(t, db.Create(journey).Error)

	tutorials := make([]model.Tutorial, 0, len(tutorialTitles))
	for i, title := range tutorialTitles {
		tutorial := model.Tutorial{JourneyID: journey.ID, Title: title, Position: i + 1}
		require.NoError(t, db.Create(&tutorial).Error)
		tutorials = append(tutorials, tutorial)
	}

	return journey, tutorials
}
