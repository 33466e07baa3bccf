package service

import (
	"context"
	"errors"

	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/A25-CS206/backend-service/pkg/logger"
	"github.com/A25-CS206/backend-service/pkg/monitoring"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	confidencePersisted  = 0.95
	confidenceClassifier = 0.85
	confidenceHeuristic  = 0.60

	// Heuristic thresholds: quiz scores live on the internal 0-5 scale.
	fastLearnerScoreThreshold = 4.5
	consistentDaysThreshold   = 3
)

// clusterLabels maps the classifier's numeric cluster ids to labels.
var clusterLabels = map[int]string{
	0: "Fast Learner",
	1: "Consistent Learner",
	2: "Reflective Learner",
}

type personaEntry struct {
	description     string
	recommendations []string
}

var personaCatalog = map[string]personaEntry{
	"Fast Learner": {
		description: "You absorb new material quickly and score high on quizzes. Challenge yourself with advanced journeys.",
		recommendations: []string{
			"Advanced Backend Architecture",
			"System Design Deep Dive",
			"Competitive Programming Drills",
		},
	},
	"Consistent Learner": {
		description: "You show up regularly and make steady progress. Keep your streak going with structured journeys.",
		recommendations: []string{
			"Fullstack Web Development Path",
			"Daily Coding Habit Builder",
			"Clean Code Fundamentals",
		},
	},
	"Reflective Learner": {
		description: "You take your time to understand material deeply. Revisit fundamentals and practice at your own pace.",
		recommendations: []string{
			"Programming Logic Refresher",
			"Guided Practice Projects",
			"Fundamentals of Web Development",
		},
	},
}

// Persona is the resolved learning style. The resolver's contract is that
// resolution always succeeds; degraded paths only lower Confidence.
type Persona struct {
	Label           string   `json:"label"`
	Confidence      float64  `json:"confidence"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// PersonaFeatures is the aggregate input the resolver and the heuristic
// work from.
type PersonaFeatures struct {
	AvgQuizScore      float64 // 0-5 scale
	TotalStudySeconds int64
	ModulesCompleted  int64
	ActiveDays        int
}

type PersonaService struct {
	ClusterRepo *repository.ClusterRepository
	Classifier  *ClassifierService
}

func NewPersonaService(clusterRepo *repository.ClusterRepository, classifier *ClassifierService) *PersonaService {
	return &PersonaService{
		ClusterRepo: clusterRepo,
		Classifier:  classifier,
	}
}

// Resolve determines the user's learning style. Priority: a persisted
// cluster assignment wins outright, then a live classifier prediction, then
// the local heuristic. Classifier failures are logged and swallowed; this
// method never fails.
func (s *PersonaService) Resolve(ctx context.Context, userID string, features PersonaFeatures) Persona {
	assignment, err := s.ClusterRepo.FindByUser(userID)
	if err == nil {
		return buildPersona(assignment.LearnerType, confidencePersisted)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Warn("cluster lookup failed, continuing without persisted label",
			zap.String("userID", userID), zap.Error(err))
	}

	if s.Classifier.Enabled() {
		prediction, err := s.Classifier.Predict(ctx, FeatureVector{
			AvgQuizScore:      features.AvgQuizScore,
			TotalStudySeconds: features.TotalStudySeconds,
			ModulesCompleted:  features.ModulesCompleted,
		})
		if err == nil {
			label := prediction.LearnerType
			if label == "" && prediction.Cluster != nil {
				label = clusterLabels[*prediction.Cluster]
			}
			if label != "" {
				confidence := prediction.Confidence
				if confidence == 0 {
					confidence = confidenceClassifier
				}
				return buildPersona(label, confidence)
			}
			err = errors.New("prediction carried neither label nor known cluster")
		}

		logger.Log.Warn("classifier unavailable, falling back to heuristic",
			zap.String("userID", userID), zap.Error(err))
		monitoring.ClassifierFallbacks.Inc()
	}

	return buildPersona(HeuristicLabel(features), confidenceHeuristic)
}

// HeuristicLabel is the deterministic local fallback classification.
func HeuristicLabel(features PersonaFeatures) string {
	switch {
	case features.AvgQuizScore >= fastLearnerScoreThreshold:
		return "Fast Learner"
	case features.ActiveDays >= consistentDaysThreshold:
		return "Consistent Learner"
	default:
		return "Reflective Learner"
	}
}

// DescriptionFor returns the static description for a label; unknown labels
// get the Consistent Learner entry.
func DescriptionFor(label string) string {
	return catalogEntry(label).description
}

func buildPersona(label string, confidence float64) Persona {
	entry := catalogEntry(label)
	return Persona{
		Label:           label,
		Confidence:      confidence,
		Description:     entry.description,
		Recommendations: entry.recommendations,
	}
}

func catalogEntry(label string) personaEntry {
	if entry, ok := personaCatalog[label]; ok {
		return entry
	}
	return personaCatalog["Consistent Learner"]
}
