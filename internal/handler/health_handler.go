package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks liveness of a backing store. May be nil when the deployment
// has no external store to check.
type Pinger interface {
	Ping() error
}

// HealthHandler serves the monitoring endpoints.
type HealthHandler struct {
	pinger  Pinger
	name    string
	version string
	model   string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pinger Pinger, name, version, model string) *HealthHandler {
	return &HealthHandler{pinger: pinger, name: name, version: version, model: model}
}

// Health handles GET /api/v1/health.
func (h *HealthHandler) Health(c *gin.Context) {
	start := time.Now()
	status := "ok"
	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			status = "degraded"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"ping_ms": time.Since(start).Milliseconds(),
	})
}

// SystemInfo handles GET /api/v1/system/info.
func (h *HealthHandler) SystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    h.name,
		"version": h.version,
		"model":   h.model,
	})
}
