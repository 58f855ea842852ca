package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/pkg/database"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db *database.PostgresDB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness reports that the process is up
// GET /health
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Readiness reports whether the service can reach its dependencies
// GET /health/ready
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeServiceUnavailable, "database unreachable"))
			return
		}
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ready"}))
}
