package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/A25-CS206/backend-service/internal/config"
	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersonaService(t *testing.T, classifierURL string) (*PersonaService, *repository.ClusterRepository) {
	t.Helper()
	db := newTestDB(t)
	clusterRepo := repository.NewClusterRepository(db)
	classifier := NewClassifierService(config.ClassifierConfig{
		ServiceURL:     classifierURL,
		TimeoutSeconds: 1,
	})
	return NewPersonaService(clusterRepo, classifier), clusterRepo
}

func TestHeuristicLabel(t *testing.T) {
	cases := []struct {
		name     string
		features PersonaFeatures
		want     string
	}{
		{"high score wins", PersonaFeatures{AvgQuizScore: 4.8, ActiveDays: 1}, "Fast Learner"},
		{"score at threshold", PersonaFeatures{AvgQuizScore: 4.5}, "Fast Learner"},
		{"regular attendance", PersonaFeatures{AvgQuizScore: 3.0, ActiveDays: 5}, "Consistent Learner"},
		{"attendance at threshold", PersonaFeatures{AvgQuizScore: 3.0, ActiveDays: 3}, "Consistent Learner"},
		{"low activity", PersonaFeatures{AvgQuizScore: 3.0, ActiveDays: 1}, "Reflective Learner"},
		{"no data", PersonaFeatures{}, "Reflective Learner"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HeuristicLabel(tc.features))
		})
	}
}

func TestResolvePrefersPersistedAssignment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("classifier must not be called when an assignment is persisted")
	}))
	defer server.Close()

	svc, clusterRepo := newPersonaService(t, server.URL)
	require.NoError(t, clusterRepo.Upsert(&model.LearnerClusterAssignment{
		UserID:      "user-1",
		Cluster:     2,
		LearnerType: "Reflective Learner",
	}))

	persona := svc.Resolve(context.Background(), "user-1", PersonaFeatures{AvgQuizScore: 5})
	assert.Equal(t, "Reflective Learner", persona.Label)
	assert.Equal(t, 0.95, persona.Confidence)
	assert.NotEmpty(t, persona.Description)
	assert.NotEmpty(t, persona.Recommendations)
}

func TestResolveUsesClassifierPrediction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"cluster": 0, "learner_type": "Fast Learner", "confidence": 0.91}]`))
	}))
	defer server.Close()

	svc, _ := newPersonaService(t, server.URL)
	persona := svc.Resolve(context.Background(), "user-1", PersonaFeatures{AvgQuizScore: 2})
	assert.Equal(t, "Fast Learner", persona.Label)
	assert.Equal(t, 0.91, persona.Confidence)
}

func TestResolveMapsBareClusterToLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"cluster": 1}]`))
	}))
	defer server.Close()

	svc, _ := newPersonaService(t, server.URL)
	persona := svc.Resolve(context.Background(), "user-1", PersonaFeatures{})
	assert.Equal(t, "Consistent Learner", persona.Label)
	assert.Equal(t, 0.85, persona.Confidence, "missing confidence gets the classifier default")
}

func TestResolveFallsBackOnClassifierError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, _ := newPersonaService(t, server.URL)
	persona := svc.Resolve(context.Background(), "user-1", PersonaFeatures{AvgQuizScore: 4.9})
	assert.Equal(t, "Fast Learner", persona.Label)
	assert.Equal(t, 0.60, persona.Confidence, "heuristic answers carry reduced confidence")
}

func TestResolveFallsBackOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	svc, _ := newPersonaService(t, server.URL)
	persona := svc.Resolve(context.Background(), "user-1", PersonaFeatures{AvgQuizScore: 3.0, ActiveDays: 4})
	assert.Equal(t, "Consistent Learner", persona.Label)
	assert.Equal(t, 0.60, persona.Confidence)
}

func TestResolveWithClassifierDisabled(t *testing.T) {
	svc, _ := newPersonaService(t, "")
	persona := svc.Resolve(context.Background(), "user-1", PersonaFeatures{AvgQuizScore: 1.0, ActiveDays: 0})
	assert.Equal(t, "Reflective Learner", persona.Label)
	assert.Equal(t, 0.60, persona.Confidence)
}
