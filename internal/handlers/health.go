package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uyeplus/app-campaign/internal/redisclient"
)

// HealthResponse is the health check response body
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// HealthHandler reports process health and dependency reachability
type HealthHandler struct {
	cache *redisclient.Client
}

// NewHealthHandler creates the health handler. The cache may be nil.
func NewHealthHandler(cache *redisclient.Client) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports service health and cache reachability
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  map[string]string{},
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()).Err(); err != nil {
			health.Services["redis"] = "unreachable"
		} else {
			health.Services["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, health)
}
