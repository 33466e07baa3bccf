package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/A25-CS206/backend-service/internal/util"
	"golang.org/x/sync/errgroup"
)

// DashboardService assembles the learning-insight overview from the
// aggregate, persona and resume sources.
type DashboardService struct {
	Insight      *InsightService
	Persona      *PersonaService
	TrackingRepo *repository.TrackingRepository
}

func NewDashboardService(insight *InsightService, persona *PersonaService, trackingRepo *repository.TrackingRepository) *DashboardService {
	return &DashboardService{
		Insight:      insight,
		Persona:      persona,
		TrackingRepo: trackingRepo,
	}
}

// Bilingual carries the Indonesian and English variant of a display string.
type Bilingual struct {
	ID string `json:"id"`
	EN string `json:"en"`
}

type LearningStyle struct {
	Label       string  `json:"label"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

type MetricCard struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	Comparison string `json:"comparison"`
}

// Recommendation is a tagged variant: "resume" carries the journey and
// tutorial titles of the most recent view, "start" is the first-time-user
// prompt without them.
type Recommendation struct {
	Type          string    `json:"type"`
	JourneyTitle  string    `json:"journey_title,omitempty"`
	TutorialTitle string    `json:"tutorial_title,omitempty"`
	Message       Bilingual `json:"message"`
}

type DashboardView struct {
	LearningStyleDetection LearningStyle  `json:"learning_style_detection"`
	MetricsCards           []MetricCard   `json:"metrics_cards"`
	LearningTrendChart     []TrendPoint   `json:"learning_trend_chart"`
	TodaysRecommendation   Recommendation `json:"todays_recommendation"`
	PersonalInsightSummary Bilingual      `json:"personal_insight_summary"`
	ModuleRecommendations  []string       `json:"module_recommendations"`
}

// BuildDashboard gathers the five independent reads concurrently, resolves
// the persona from the current-window features and formats the response.
// ref is the injected reference time; the demo-account substitution happens
// in the controller, never here.
func (s *DashboardService) BuildDashboard(ctx context.Context, userID string, ref time.Time) (*DashboardView, error) {
	currentStart := ref.AddDate(0, 0, -7)
	previousStart := ref.AddDate(0, 0, -14)
	weekStart := util.StartOfWeek(ref)

	var (
		current    WindowMetrics
		previous   WindowMetrics
		activeDays int
		trend      []TrendPoint
		resume     *repository.ResumeRow
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		current, err = s.Insight.ComputeWindowMetrics(userID, currentStart, ref)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.Insight.ComputeWindowMetrics(userID, previousStart, currentStart)
		return err
	})
	g.Go(func() error {
		var err error
		activeDays, err = s.Insight.CountActiveDays(userID, currentStart, ref)
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = s.Insight.ComputeDailyTrend(userID, weekStart)
		return err
	})
	g.Go(func() error {
		var err error
		resume, err = s.Insight.ResumePoint(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	persona := s.Persona.Resolve(ctx, userID, PersonaFeatures{
		AvgQuizScore:      current.AvgScore,
		TotalStudySeconds: int64(current.StudyHours * 3600),
		ModulesCompleted:  current.ModulesCompleted,
		ActiveDays:        activeDays,
	})

	return &DashboardView{
		LearningStyleDetection: LearningStyle{
			Label:       persona.Label,
			Confidence:  persona.Confidence,
			Description: persona.Description,
		},
		MetricsCards:           buildMetricsCards(current, previous, activeDays),
		LearningTrendChart:     trend,
		TodaysRecommendation:   buildRecommendation(resume),
		PersonalInsightSummary: buildSummary(persona.Label, current.StudyHours),
		ModuleRecommendations:  persona.Recommendations,
	}, nil
}

func buildMetricsCards(current, previous WindowMetrics, activeDays int) []MetricCard {
	consistency := int(math.Round(float64(activeDays) / 7 * 100))

	return []MetricCard{
		{
			Title:      "Total Study Hours",
			Value:      fmt.Sprintf("%.1f", current.StudyHours),
			Comparison: formatHoursDelta(current.StudyHours - previous.StudyHours),
		},
		{
			Title:      "Modules Completed",
			Value:      strconv.FormatInt(current.ModulesCompleted, 10),
			Comparison: formatCountDelta(current.ModulesCompleted - previous.ModulesCompleted),
		},
		{
			Title:      "Average Quiz Score",
			Value:      formatScore(current.AvgScore),
			Comparison: formatScoreDelta(current.AvgScore - previous.AvgScore),
		},
		{
			Title:      "Learning Consistency",
			Value:      fmt.Sprintf("%d%%", consistency),
			Comparison: fmt.Sprintf("%d of 7 days active", activeDays),
		},
	}
}

// formatHoursDelta renders a signed week-over-week difference with an
// explicit plus for non-negative values and one decimal place.
func formatHoursDelta(delta float64) string {
	return fmt.Sprintf("%+.1fh vs last week", delta)
}

func formatCountDelta(delta int64) string {
	return fmt.Sprintf("%+d vs last week", delta)
}

// formatScore renders the internal 0-5 rating on the 0-100 display scale.
func formatScore(raw float64) string {
	return strconv.Itoa(int(math.Round(raw * 20)))
}

func formatScoreDelta(delta float64) string {
	return fmt.Sprintf("%+.1f vs last week", delta*20)
}

func buildRecommendation(resume *repository.ResumeRow) Recommendation {
	if resume == nil {
		return Recommendation{
			Type: "start",
			Message: Bilingual{
				ID: "Mulai perjalanan belajarmu hari ini!",
				EN: "Start your learning journey today!",
			},
		}
	}

	return Recommendation{
		Type:          "resume",
		JourneyTitle:  resume.JourneyName,
		TutorialTitle: resume.TutorialTitle,
		Message: Bilingual{
			ID: "Lanjutkan momentummu!",
			EN: "Keep the momentum!",
		},
	}
}

func buildSummary(label string, weekHours float64) Bilingual {
	return Bilingual{
		ID: fmt.Sprintf("Gaya belajarmu terdeteksi sebagai '%s'. Minggu ini kamu belajar total %.1f jam.", label, weekHours),
		EN: fmt.Sprintf("Your learning style is detected as '%s'. This week you studied a total of %.1f hours.", label, weekHours),
	}
}
