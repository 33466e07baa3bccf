package service

import (
	"errors"

	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/A25-CS206/backend-service/internal/util"
	"gorm.io/gorm"
)

type JourneyService struct {
	JourneyRepo *repository.JourneyRepository
	UserRepo    *repository.UserRepository
}

func NewJourneyService(journeyRepo *repository.JourneyRepository, userRepo *repository.UserRepository) *JourneyService {
	return &JourneyService{
		JourneyRepo: journeyRepo,
		UserRepo:    userRepo,
	}
}

func (s *JourneyService) CreateJourney(journey *model.Journey) (string, error) {
	if err := s.JourneyRepo.Create(journey); err != nil {
		return "", err
	}
	return journey.ID, nil
}

func (s *JourneyService) GetJourneys() ([]repository.JourneyListItem, error) {
	return s.JourneyRepo.FindAll()
}

// JourneyDetail is a journey with its instructor name and tutorial list.
type JourneyDetail struct {
	model.Journey
	InstructorName string           `json:"instructorName"`
	Tutorials      []model.Tutorial `json:"tutorials"`
}

func (s *JourneyService) GetJourneyDetail(id string) (*JourneyDetail, error) {
	journey, err := s.JourneyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrJourneyNotFound
		}
		return nil, err
	}

	tutorials, err := s.JourneyRepo.TutorialsByJourney(id)
	if err != nil {
		return nil, err
	}

	detail := &JourneyDetail{
		Journey:   *journey,
		Tutorials: tutorials,
	}

	if journey.InstructorID != "" {
		if instructor, err := s.UserRepo.FindByID(journey.InstructorID); err == nil {
			detail.InstructorName = instructor.DisplayName
		}
	}

	return detail, nil
}

func (s *JourneyService) AddTutorial(journeyID string, tutorial *model.Tutorial) (string, error) {
	if _, err := s.JourneyRepo.FindByID(journeyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrJourneyNotFound
		}
		return "", err
	}

	tutorial.JourneyID = journeyID
	if err := s.JourneyRepo.CreateTutorial(tutorial); err != nil {
		return "", err
	}
	return tutorial.ID, nil
}
