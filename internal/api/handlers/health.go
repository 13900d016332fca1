package handlers

import (
	"context"
	"net/http"
	"time"

	"ifc-reuse-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db    *gorm.DB
	store storage.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, store storage.Store) *HealthHandler {
	return &HealthHandler{
		db:    db,
		store: store,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// Health returns the health status of the application
// @Summary Health check
// @Description Get the overall health status of the application including database and storage connectivity
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Application is healthy"
// @Failure 503 {object} HealthResponse "Application is unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Services:  h.check(c.Request.Context(), "healthy", "error: "),
	}
	for _, state := range response.Services {
		if state != "healthy" {
			response.Status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Ready returns the readiness status of the application
// @Summary Readiness check
// @Description Check if the application is ready to serve requests
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is ready"
// @Failure 503 {object} map[string]interface{} "Application is not ready"
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	services := h.check(c.Request.Context(), "ready", "not ready: ")
	ready := true
	for _, state := range services {
		if state != "ready" {
			ready = false
		}
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now(),
		"services":  services,
	})
}

// Live returns the liveness status of the application
// @Summary Liveness check
// @Description Check if the application is alive and responding
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is alive"
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	// Simple liveness check - if we can respond, we're alive
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context, okState, failPrefix string) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	services := make(map[string]string)

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		services["database"] = failPrefix + err.Error()
	} else {
		services["database"] = okState
	}

	if h.store != nil {
		if _, err := h.store.Exists(ctx, "health/probe"); err != nil {
			services["storage"] = failPrefix + err.Error()
		} else {
			services["storage"] = okState
		}
	}
	return services
}
