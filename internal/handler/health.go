package handler

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/videotube/internal/constants"
	"github.com/Payphone-Digital/videotube/pkg/health"
	"github.com/Payphone-Digital/videotube/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	monitor *health.Monitor
}

type HealthCheckResponse struct {
	Status    string               `json:"status"`
	Version   string               `json:"version"`
	Timestamp time.Time            `json:"timestamp"`
	Checks    []health.CheckResult `json:"checks"`
}

func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Liveness answers the liveness probe
func (h *HealthHandler) Liveness(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{}, constants.MsgHealthy)
}

// HealthCheck runs every registered dependency check now
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	h.monitor.CheckAll(c.Request.Context())

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   constants.AppVersion,
		Timestamp: time.Now(),
		Checks:    h.monitor.Results(),
	}

	statusCode := http.StatusOK
	if !h.monitor.Healthy() {
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, constants.BuildResponse(statusCode, response, response.Status))
}
