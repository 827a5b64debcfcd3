package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"user-hub.backend/pkg/logger"
)

// HealthHandler serves the liveness endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Healthz handles the health probe
// GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	if !rejectPayload(c, "healthz") {
		return
	}
	c.Status(http.StatusOK)
}

// Ping handles the liveness ping
// GET /ping
func (h *HealthHandler) Ping(c *gin.Context) {
	if !rejectPayload(c, "ping") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// rejectPayload enforces that probe endpoints take neither a body nor a
// query string. Returns false after writing the 400 when violated.
func rejectPayload(c *gin.Context, endpoint string) bool {
	if c.Request.ContentLength > 0 {
		logger.Warn(c.Request.Context(), "Request body not allowed",
			zap.String("endpoint", endpoint),
		)
		c.Status(http.StatusBadRequest)
		return false
	}
	if len(c.Request.URL.RawQuery) > 0 {
		logger.Warn(c.Request.Context(), "Query parameters not allowed",
			zap.String("endpoint", endpoint),
		)
		c.Status(http.StatusBadRequest)
		return false
	}
	return true
}
