package http

import (
	"context"
	"net/http"

	"github.com/agrinethra/plant-health-relay/internal/plant_health/domain"
	"github.com/gin-gonic/gin"
)

// Assessor is the relay behind POST /health.
type Assessor interface {
	Assess(ctx context.Context, image string) (*domain.Assessment, error)
}

type Handler struct {
	relay Assessor
}

func NewHandler(relay Assessor) *Handler {
	return &Handler{relay: relay}
}

// SubmitHealthAssessment relays the image upstream. Both the upstream body
// and a local failure are sent with 200; the upstream status is not mapped.
func (h *Handler) SubmitHealthAssessment(c *gin.Context) {
	var body domain.ImageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	res, err := h.relay.Assess(c.Request.Context(), *body.Image)
	if err != nil {
		c.JSON(http.StatusOK, domain.ErrorDescriptor{Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", res.Body)
}
