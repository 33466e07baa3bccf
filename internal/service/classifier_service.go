package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/A25-CS206/backend-service/internal/config"
)

// ClassifierService calls the remote learner-type prediction service. The
// service speaks a batch protocol: a JSON array of feature vectors in, a
// JSON array of predictions out.
type ClassifierService struct {
	config config.ClassifierConfig
	client *http.Client
}

func NewClassifierService(cfg config.ClassifierConfig) *ClassifierService {
	return &ClassifierService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// FeatureVector is the engineered per-user payload sent for prediction.
type FeatureVector struct {
	AvgQuizScore       float64 `json:"avg_quiz_score"`
	TotalStudySeconds  int64   `json:"total_study_seconds"`
	ModulesCompleted   int64   `json:"modules_completed"`
	AvgMaterialsPerDay float64 `json:"avg_materials_per_day"`
	TotalMaterials     int64   `json:"total_materials"`
	TotalWeeksActive   int64   `json:"total_weeks_active"`
	AvgLoginsPerWeek   float64 `json:"avg_logins_per_week"`
}

// Prediction is one element of the batch response. The service may answer
// with a direct label, a numeric cluster id, or both; Confidence is 0 when
// the service does not report one.
type Prediction struct {
	Cluster     *int    `json:"cluster"`
	LearnerType string  `json:"learner_type"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// Enabled reports whether a service URL is configured at all.
func (s *ClassifierService) Enabled() bool {
	return s.config.ServiceURL != ""
}

// Predict sends one feature vector and returns the first prediction of the
// batch response. Any transport, timeout or decoding problem is returned as
// an error for the caller to swallow.
func (s *ClassifierService) Predict(ctx context.Context, features FeatureVector) (*Prediction, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("classifier service not configured")
	}

	payload, err := json.Marshal([]FeatureVector{features})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.config.TimeoutSeconds)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ServiceURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	var predictions []Prediction
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, err
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("classifier returned an empty batch")
	}

	return &predictions[0], nil
}
