package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradtracker/internal/app/models/dto"
)

// ReadinessChecker is a dependency the service needs to answer requests
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// HealthController serves liveness and readiness probes
type HealthController struct {
	checks  map[string]ReadinessChecker
	timeout time.Duration
}

// NewHealthController creates a new HealthController
func NewHealthController(checks map[string]ReadinessChecker) *HealthController {
	return &HealthController{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Ping godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.PingResponse
// @Router /ping [get]
func (h *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.PingResponse{
		Message: "pong",
		Status:  "ok",
	})
}

// Health godoc
// @Summary Readiness probe
// @Description Pings every backing dependency. Returns 503 if any is unavailable.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	resp := dto.HealthResponse{
		Status:    "ok",
		Checks:    make(map[string]string, len(h.checks)),
		Timestamp: time.Now(),
	}
	for name, check := range h.checks {
		if err := check.Ping(checkCtx); err != nil {
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	ctx.JSON(status, resp)
}
