package http

import (
	"net/http"
	"time"

	"github.com/agrinethra/plant-health-relay/internal/plant_health/service"
	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Service   string         `json:"service"`
	Version   string         `json:"version"`
	Upstream  UpstreamHealth `json:"upstream"`
}

type UpstreamHealth struct {
	APIKeyConfigured bool    `json:"api_key_configured"`
	Calls            int64   `json:"calls"`
	Errors           int64   `json:"errors"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	ErrorRatePct     float64 `json:"error_rate_pct"`
}

type HealthHandler struct {
	serviceName      string
	version          string
	apiKeyConfigured bool
	metrics          *service.Metrics
}

func NewHealthHandler(serviceName, version string, apiKeyConfigured bool, metrics *service.Metrics) *HealthHandler {
	if metrics == nil {
		metrics = &service.Metrics{}
	}
	return &HealthHandler{
		serviceName:      serviceName,
		version:          version,
		apiKeyConfigured: apiKeyConfigured,
		metrics:          metrics,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	snap := h.metrics.Snapshot()

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Upstream: UpstreamHealth{
			APIKeyConfigured: h.apiKeyConfigured,
			Calls:            snap.Calls,
			Errors:           snap.Errors,
			AvgLatencyMs:     snap.AverageUpstreamLatency(),
			ErrorRatePct:     snap.UpstreamErrorRate(),
		},
	})
}

// RegisterRoutes mounts liveness on GET only; POST /health belongs to the relay.
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.HealthCheck)
}
