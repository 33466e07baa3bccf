// Seed the showcase account and its activity history.
//
// The dashboard demo pins its reference time to demo.anchor_date, so the
// seeded trackings and completions are placed relative to that date and
// always land inside the dashboard's 7-day window.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"log"
	"time"

	"github.com/A25-CS206/backend-service/internal/config"
	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/A25-CS206/backend-service/pkg/database"
	"github.com/A25-CS206/backend-service/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	anchor := time.Now()
	if cfg.Demo.AnchorDate != "" {
		anchor, err = time.Parse("2006-01-02", cfg.Demo.AnchorDate)
		if err != nil {
			log.Fatalf("Invalid demo.anchor_date %q: %v", cfg.Demo.AnchorDate, err)
		}
	}

	if err := seed(db, cfg.Demo.UserID, anchor); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Demo data seeded")
}

func seed(db *gorm.DB, demoUserID string, anchor time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	instructor := &model.User{
		DisplayName: "Dina Instructor",
		Email:       "dina@example.com",
		Password:    string(hash),
		Role:        model.Instructor,
	}
	if err := db.FirstOrCreate(instructor, model.User{Email: instructor.Email}).Error; err != nil {
		return err
	}

	demo := &model.User{
		ID:          demoUserID,
		DisplayName: "Demo Learner",
		Email:       "demo@example.com",
		Password:    string(hash),
		Role:        model.Learner,
	}
	if err := db.FirstOrCreate(demo, model.User{Email: demo.Email}).Error; err != nil {
		return err
	}

	journey := &model.Journey{
		Name:         "Backend Development Fundamentals",
		Summary:      "Build and deploy your first HTTP API.",
		Difficulty:   "beginner",
		InstructorID: instructor.ID,
	}
	if err := db.FirstOrCreate(journey, model.Journey{Name: journey.Name}).Error; err != nil {
		return err
	}

	titles := []string{"HTTP Basics", "Routing and Handlers", "Persisting Data", "Deploying Your API"}
	tutorials := make([]model.Tutorial, 0, len(titles))
	for i, title := range titles {
		tutorial := model.Tutorial{JourneyID: journey.ID, Title: title, Position: i + 1}
		if err := db.FirstOrCreate(&tutorial, model.Tutorial{JourneyID: journey.ID, Title: title}).Error; err != nil {
			return err
		}
		tutorials = append(tutorials, tutorial)
	}

	// Activity spread over the anchor week: three active days.
	trackingRepo := repository.NewTrackingRepository(db)
	views := []struct {
		tutorial model.Tutorial
		opened   time.Time
		closed   time.Time
	}{
		{tutorials[0], anchor.AddDate(0, 0, -5).Add(9 * time.Hour), anchor.AddDate(0, 0, -5).Add(11 * time.Hour)},
		{tutorials[1], anchor.AddDate(0, 0, -3).Add(19 * time.Hour), anchor.AddDate(0, 0, -3).Add(21 * time.Hour)},
		{tutorials[2], anchor.AddDate(0, 0, -1).Add(10 * time.Hour), anchor.AddDate(0, 0, -1).Add(12 * time.Hour)},
	}
	for _, v := range views {
		if _, _, err := trackingRepo.UpsertView(demo.ID, journey.ID, v.tutorial.ID, v.opened); err != nil {
			return err
		}
		if _, _, err := trackingRepo.UpsertView(demo.ID, journey.ID, v.tutorial.ID, v.closed); err != nil {
			return err
		}
	}

	completions := []model.CompletionRecord{
		{JourneyID: journey.ID, DeveloperID: demo.ID, StudyDurationSeconds: 7200, AvgSubmissionRating: 4.2, CreatedAt: anchor.AddDate(0, 0, -5).Add(11 * time.Hour)},
		{JourneyID: journey.ID, DeveloperID: demo.ID, StudyDurationSeconds: 7200, AvgSubmissionRating: 4.6, CreatedAt: anchor.AddDate(0, 0, -3).Add(21 * time.Hour)},
	}
	for i := range completions {
		var count int64
		db.Model(&model.CompletionRecord{}).
			Where("developer_id = ? AND created_at = ?", demo.ID, completions[i].CreatedAt).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&completions[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
