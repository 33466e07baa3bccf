package repository

import (
	"time"

	"github.com/A25-CS206/backend-service/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClusterRepository struct {
	DB *gorm.DB
}

func NewClusterRepository(db *gorm.DB) *ClusterRepository {
	return &ClusterRepository{DB: db}
}

func (r *ClusterRepository) FindByUser(userID string) (*model.LearnerClusterAssignment, error) {
	var assignment model.LearnerClusterAssignment
	err := r.DB.First(&assignment, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Upsert keeps at most one assignment per user, always reflecting the most
// recent classification.
func (r *ClusterRepository) Upsert(assignment *model.LearnerClusterAssignment) error {
	assignment.UpdatedAt = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cluster", "learner_type", "updated_at"}),
	}).Create(assignment).Error
}
