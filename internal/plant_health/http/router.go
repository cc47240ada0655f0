package http

import "github.com/gin-gonic/gin"

// Register registers the plant health routes
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/health", h.SubmitHealthAssessment)
}
