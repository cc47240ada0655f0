package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agrinethra/plant-health-relay/internal/plant_health/domain"
)

// ErrInvalidJSON is wrapped when the upstream body cannot be parsed as JSON.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// KindwiseClient handles communication with the plant.id API
type KindwiseClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewKindwiseClient creates a new Kindwise client. A zero timeout leaves the
// call bounded only by the caller's context.
func NewKindwiseClient(baseURL, apiKey string, timeout time.Duration) *KindwiseClient {
	return &KindwiseClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HealthAssessmentURL returns the full upstream URL including the details query.
func (c *KindwiseClient) HealthAssessmentURL() string {
	return c.baseURL + HealthAssessmentPath + "?" + domain.DetailsQuery()
}

// HealthAssessment posts body to the health assessment endpoint. Any status
// code is a completed exchange; the body must still be valid JSON.
func (c *KindwiseClient) HealthAssessment(ctx context.Context, body domain.AssessmentRequest) (*domain.Assessment, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.HealthAssessmentURL(), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if !json.Valid(raw) {
		NewLogger(ctx).LogWarnf("health_assessment", "status=%d raw_response=%s", resp.StatusCode, raw)
		return nil, fmt.Errorf("decode upstream response (status %d): %w", resp.StatusCode, ErrInvalidJSON)
	}

	return &domain.Assessment{StatusCode: resp.StatusCode, Body: json.RawMessage(raw)}, nil
}
