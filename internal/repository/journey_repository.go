package repository

import (
	"github.com/A25-CS206/backend-service/internal/model"
	"gorm.io/gorm"
)

type JourneyRepository struct {
	DB *gorm.DB
}

func NewJourneyRepository(db *gorm.DB) *JourneyRepository {
	return &JourneyRepository{DB: db}
}

// JourneyListItem is a catalog row with the instructor name joined in.
type JourneyListItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Difficulty     string `json:"difficulty"`
	InstructorName string `json:"instructorName"`
}

func (r *JourneyRepository) Create(journey *model.Journey) error {
	return r.DB.Create(journey).Error
}

func (r *JourneyRepository) FindAll() ([]JourneyListItem, error) {
	var items []JourneyListItem
	err := r.DB.Table("developer_journeys j").
		Select("j.id, j.name, j.difficulty, u.display_name as instructor_name").
		Joins("LEFT JOIN users u ON j.instructor_id = u.id").
		Scan(&items).Error
	return items, err
}

func (r *JourneyRepository) FindByID(id string) (*model.Journey, error) {
	var journey model.Journey
	err := r.DB.First(&journey, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &journey, nil
}

func (r *JourneyRepository) CreateTutorial(tutorial *model.Tutorial) error {
	return r.DB.Create(tutorial).Error
}

func (r *JourneyRepository) TutorialsByJourney(journeyID string) ([]model.Tutorial, error) {
	var tutorials []model.Tutorial
	err := r.DB.Where("journey_id = ?", journeyID).Order("position ASC").Find(&tutorials).Error
	return tutorials, err
}

func (r *JourneyRepository) FindTutorialByID(id string) (*model.Tutorial, error) {
	var tutorial model.Tutorial
	err := r.DB.First(&tutorial, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func (r *JourneyRepository) CountTutorials(journeyID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Tutorial{}).Where("journey_id = ?", journeyID).Count(&count).Error
	return count, err
}
