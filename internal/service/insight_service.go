package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/A25-CS206/backend-service/internal/util"
	"github.com/A25-CS206/backend-service/pkg/logger"
	"github.com/A25-CS206/backend-service/pkg/monitoring"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InsightService computes the derived per-user learning metrics: windowed
// aggregates, the weekly trend and the on-demand classification trigger.
type InsightService struct {
	TrackingRepo   *repository.TrackingRepository
	CompletionRepo *repository.CompletionRepository
	ExamRepo       *repository.ExamRepository
	ClusterRepo    *repository.ClusterRepository
	Classifier     *ClassifierService
}

func NewInsightService(
	trackingRepo *repository.TrackingRepository,
	completionRepo *repository.CompletionRepository,
	examRepo *repository.ExamRepository,
	clusterRepo *repository.ClusterRepository,
	classifier *ClassifierService,
) *InsightService {
	return &InsightService{
		TrackingRepo:   trackingRepo,
		CompletionRepo: completionRepo,
		ExamRepo:       examRepo,
		ClusterRepo:    clusterRepo,
		Classifier:     classifier,
	}
}

// WindowMetrics are the aggregates for one half-open time window
// [start, end). AvgScore stays on the internal 0-5 scale; presentation
// scaling happens in the dashboard service.
type WindowMetrics struct {
	StudyHours       float64 `json:"studyHours"`
	ModulesCompleted int64   `json:"modulesCompleted"`
	AvgScore         float64 `json:"avgScore"`
}

// TrendPoint is one day of the weekly activity chart.
type TrendPoint struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

// ComputeWindowMetrics sums completion records whose created_at falls in
// [start, end). Empty windows yield zeros, never nulls.
func (s *InsightService) ComputeWindowMetrics(userID string, start, end time.Time) (WindowMetrics, error) {
	agg, err := s.CompletionRepo.AggregateWindow(userID, start, end)
	if err != nil {
		return WindowMetrics{}, err
	}

	return WindowMetrics{
		StudyHours:       float64(agg.TotalSeconds) / 3600,
		ModulesCompleted: agg.ModulesCompleted,
		AvgScore:         agg.AvgRating,
	}, nil
}

// ComputeDailyTrend returns exactly 7 points covering weekStart through
// weekStart+6d. The day dimension is generated first and the tracking rows
// are folded into it, so inactive days appear as explicit zeros.
func (s *InsightService) ComputeDailyTrend(userID string, weekStart time.Time) ([]TrendPoint, error) {
	weekStart = util.StartOfDay(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	records, err := s.TrackingRepo.FindInWindow(userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	hoursByDay := make(map[string]float64, 7)
	for _, record := range records {
		day := util.StartOfDay(record.LastViewedAt.In(weekStart.Location())).Format("2006-01-02")
		duration := record.LastViewedAt.Sub(record.FirstOpenedAt).Hours()
		if duration < 0 {
			duration = 0
		}
		hoursByDay[day] += duration
	}

	trend := make([]TrendPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		hours := hoursByDay[day.Format("2006-01-02")]
		trend = append(trend, TrendPoint{
			Day:   day.Format("Mon"),
			Hours: math.Round(hours*10) / 10,
		})
	}

	return trend, nil
}

// CountActiveDays counts distinct calendar dates with at least one view in
// [start, end).
func (s *InsightService) CountActiveDays(userID string, start, end time.Time) (int, error) {
	count, err := s.TrackingRepo.CountActiveDays(userID, start, end)
	return int(count), err
}

// StudentInsight is the result of the on-demand "Analyze Me" trigger.
type StudentInsight struct {
	Cluster     int    `json:"cluster"`
	LearnerType string `json:"learnerType"`
	Description string `json:"description"`
}

// GenerateStudentInsight engineers the feature vector from the user's full
// activity history, asks the classifier for a learner type and persists the
// assignment. When the classifier is unreachable the heuristic label is
// persisted instead; this method only fails on persistence errors.
func (s *InsightService) GenerateStudentInsight(ctx context.Context, userID string) (*StudentInsight, error) {
	totalMaterials, err := s.TrackingRepo.CountForUser(userID)
	if err != nil {
		return nil, err
	}

	if totalMaterials == 0 {
		return &StudentInsight{
			Cluster:     -1,
			LearnerType: "New Learner",
			Description: "Not enough activity data to analyze yet.",
		}, nil
	}

	features, err := s.engineerFeatures(userID, totalMaterials)
	if err != nil {
		return nil, err
	}

	cluster, label := s.classify(ctx, userID, features)

	assignment := &model.LearnerClusterAssignment{
		UserID:      userID,
		Cluster:     cluster,
		LearnerType: label,
	}
	if err := s.ClusterRepo.Upsert(assignment); err != nil {
		return nil, err
	}

	return &StudentInsight{
		Cluster:     cluster,
		LearnerType: label,
		Description: DescriptionFor(label),
	}, nil
}

func (s *InsightService) engineerFeatures(userID string, totalMaterials int64) (FeatureVector, error) {
	first, err := s.TrackingRepo.FirstOpened(userID)
	if err != nil {
		return FeatureVector{}, err
	}
	last, err := s.TrackingRepo.LastViewed(userID)
	if err != nil {
		return FeatureVector{}, err
	}
	activeDays, err := s.TrackingRepo.CountActiveDaysAllTime(userID)
	if err != nil {
		return FeatureVector{}, err
	}

	avgExamScore, err := s.ExamRepo.AverageScore(userID)
	if err != nil {
		return FeatureVector{}, err
	}
	totalStudySeconds, err := s.CompletionRepo.TotalStudySeconds(userID)
	if err != nil {
		return FeatureVector{}, err
	}
	modulesCompleted, err := s.CompletionRepo.CountForUser(userID)
	if err != nil {
		return FeatureVector{}, err
	}

	spanDays := int64(math.Ceil(last.LastViewedAt.Sub(first.FirstOpenedAt).Hours() / 24))
	if spanDays < 1 {
		spanDays = 1
	}
	totalWeeks := int64(math.Ceil(float64(spanDays) / 7))
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	return FeatureVector{
		AvgQuizScore:       avgExamScore / 20, // exams score 0-100, features use 0-5
		TotalStudySeconds:  totalStudySeconds,
		ModulesCompleted:   modulesCompleted,
		AvgMaterialsPerDay: float64(totalMaterials) / float64(spanDays),
		TotalMaterials:     totalMaterials,
		TotalWeeksActive:   totalWeeks,
		AvgLoginsPerWeek:   float64(activeDays) / float64(totalWeeks),
	}, nil
}

// classify prefers the remote prediction and falls back to the heuristic on
// any failure.
func (s *InsightService) classify(ctx context.Context, userID string, features FeatureVector) (int, string) {
	if s.Classifier.Enabled() {
		prediction, err := s.Classifier.Predict(ctx, features)
		if err == nil {
			label := prediction.LearnerType
			cluster := -1
			if prediction.Cluster != nil {
				cluster = *prediction.Cluster
				if label == "" {
					label = clusterLabels[cluster]
				}
			}
			if label != "" {
				return cluster, label
			}
			err = errors.New("prediction carried neither label nor known cluster")
		}

		logger.Log.Warn("classifier unavailable during insight generation, using heuristic",
			zap.String("userID", userID), zap.Error(err))
		monitoring.ClassifierFallbacks.Inc()
	}

	label := HeuristicLabel(PersonaFeatures{
		AvgQuizScore:      features.AvgQuizScore,
		TotalStudySeconds: features.TotalStudySeconds,
		ModulesCompleted:  features.ModulesCompleted,
		ActiveDays:        int(math.Round(features.AvgLoginsPerWeek)),
	})
	for id, known := range clusterLabels {
		if known == label {
			return id, label
		}
	}
	return -1, label
}

// ResumePoint fetches the most recent view, or nil when the user has never
// opened anything.
func (s *InsightService) ResumePoint(userID string) (*repository.ResumeRow, error) {
	row, err := s.TrackingRepo.LatestWithTitles(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}
