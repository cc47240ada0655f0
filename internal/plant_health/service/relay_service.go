package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/agrinethra/plant-health-relay/internal/plant_health/domain"
	"golang.org/x/sync/semaphore"
)

// AssessmentClient is the upstream the relay forwards to.
type AssessmentClient interface {
	HealthAssessment(ctx context.Context, body domain.AssessmentRequest) (*domain.Assessment, error)
}

// RelayService forwards health assessment requests upstream.
type RelayService struct {
	client   AssessmentClient
	inFlight *semaphore.Weighted // nil means unbounded
	metrics  *Metrics
}

// NewRelayService creates a relay. maxInFlight caps concurrent upstream
// calls; 0 disables the cap.
func NewRelayService(client AssessmentClient, maxInFlight int, metrics *Metrics) *RelayService {
	s := &RelayService{client: client, metrics: metrics}
	if maxInFlight > 0 {
		s.inFlight = semaphore.NewWeighted(int64(maxInFlight))
	}
	if s.metrics == nil {
		s.metrics = &Metrics{}
	}
	return s
}

// Metrics returns the service's upstream counters.
func (s *RelayService) Metrics() *Metrics {
	return s.metrics
}

// Assess sends image to the upstream service and returns its JSON body
// untouched. The returned error is the only failure signal; upstream error
// statuses come back as a normal Assessment.
func (s *RelayService) Assess(ctx context.Context, image string) (*domain.Assessment, error) {
	logger := NewLogger(ctx)

	if s.inFlight != nil {
		if err := s.inFlight.Acquire(ctx, 1); err != nil {
			err = fmt.Errorf("wait for upstream slot: %w", err)
			logger.LogError("health_assessment", err)
			return nil, err
		}
		defer s.inFlight.Release(1)
	}

	start := time.Now()
	res, err := s.client.HealthAssessment(ctx, domain.NewAssessmentRequest(image))
	duration := time.Since(start)
	if err != nil {
		logger.LogError("health_assessment", err)
		s.metrics.recordUpstreamCall(duration, true)
		return nil, err
	}

	logger.LogInfof("health_assessment", "status=%d", res.StatusCode)
	logger.LogInfof("health_assessment", "raw_response=%s", res.Body)
	s.metrics.recordUpstreamCall(duration, res.StatusCode >= http.StatusBadRequest)

	return res, nil
}
