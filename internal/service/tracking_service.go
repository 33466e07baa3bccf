package service

import (
	"errors"
	"math"
	"time"

	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/A25-CS206/backend-service/internal/util"
	"gorm.io/gorm"
)

// TrackingService is the only write path for tracking data.
type TrackingService struct {
	TrackingRepo   *repository.TrackingRepository
	JourneyRepo    *repository.JourneyRepository
	CompletionRepo *repository.CompletionRepository
}

func NewTrackingService(
	trackingRepo *repository.TrackingRepository,
	journeyRepo *repository.JourneyRepository,
	completionRepo *repository.CompletionRepository,
) *TrackingService {
	return &TrackingService{
		TrackingRepo:   trackingRepo,
		JourneyRepo:    journeyRepo,
		CompletionRepo: completionRepo,
	}
}

// RecordView logs that the user opened a tutorial. Repeated calls for the
// same (user, tutorial) pair keep a single record and only advance its
// last-viewed timestamp.
func (s *TrackingService) RecordView(userID, journeyID, tutorialID string) (string, error) {
	if _, err := s.JourneyRepo.FindByID(journeyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrJourneyNotFound
		}
		return "", err
	}

	tutorial, err := s.JourneyRepo.FindTutorialByID(tutorialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrTutorialNotFound
		}
		return "", err
	}
	if tutorial.JourneyID != journeyID {
		return "", util.ErrTutorialNotFound
	}

	trackingID, affected, err := s.TrackingRepo.UpsertView(userID, journeyID, tutorialID, time.Now())
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return "", util.ErrNothingRecorded
	}

	return trackingID, nil
}

func (s *TrackingService) GetActivityHistory(userID string) ([]repository.ActivityRow, error) {
	return s.TrackingRepo.ActivityHistory(userID)
}

// CourseView is one entry of the /my-courses list.
type CourseView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	LastOpened  string     `json:"lastOpened"`
	CompletedAt *time.Time `json:"completedAt"`
	Modules     int64      `json:"modules"`
}

// GetMyCourses rolls the user's trackings up per journey. ref is the
// reference time used for the relative "last opened" strings.
func (s *TrackingService) GetMyCourses(userID string, ref time.Time) ([]CourseView, error) {
	rollups, err := s.TrackingRepo.CourseRollups(userID)
	if err != nil {
		return nil, err
	}

	courses := make([]CourseView, 0, len(rollups))
	for _, rollup := range rollups {
		course := CourseView{
			ID:         rollup.JourneyID,
			Title:      rollup.JourneyName,
			LastOpened: util.RelativeTime(rollup.LastViewedAt, ref),
			Modules:    rollup.TotalTutorials,
		}

		if rollup.TotalTutorials > 0 {
			progress := float64(rollup.ViewedCount) / float64(rollup.TotalTutorials) * 100
			if progress > 100 {
				progress = 100
			}
			course.Progress = int(math.Round(progress))
		}

		completedAt, err := s.CompletionRepo.CompletedJourneyAt(userID, rollup.JourneyID)
		if err == nil {
			course.Status = "completed"
			course.Progress = 100
			course.CompletedAt = &completedAt
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			course.Status = "in_progress"
		} else {
			return nil, err
		}

		courses = append(courses, course)
	}

	return courses, nil
}
