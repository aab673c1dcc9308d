package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	database Pinger
	timeout  time.Duration
	logger   coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(database Pinger, timeout time.Duration, logger coreport.Logger) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{
		database: database,
		timeout:  timeout,
		logger:   logger,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.database.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
