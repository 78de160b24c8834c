package health

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Handler handles health check related endpoints
type Handler struct {
	version         string
	startedAt       time.Time
	responseHandler ResponseHandler
}

// NewHandler creates a new health check handler
func NewHandler(version string, responseHandler ResponseHandler) *Handler {
	return &Handler{
		version:         version,
		startedAt:       time.Now(),
		responseHandler: responseHandler,
	}
}

// HandleHealthCheck reports service liveness
func (h *Handler) HandleHealthCheck(c *gin.Context) {
	h.responseHandler.SuccessResponse(c, gin.H{
		"status":  "healthy",
		"version": h.version,
		"uptime":  int64(time.Since(h.startedAt).Seconds()),
	}, "Health check successful")
}
