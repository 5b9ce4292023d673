package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/handler/helper"
)

// healthTimeout - предельное время проверки зависимостей
const healthTimeout = 2 * time.Second

// HealthCheck проверяет доступность зависимости (например, базы данных)
type HealthCheck func(ctx context.Context) error

// HealthHandler отвечает на проверки живости сервиса
type HealthHandler struct {
	checks map[string]HealthCheck
	logger *zap.Logger
}

// NewHealthHandler создает обработчик проверок. checks - именованные проверки зависимостей.
func NewHealthHandler(checks map[string]HealthCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

// Healthz выполняет все проверки и отвечает 200 или 503
// GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   http.StatusServiceUnavailable,
			"message": helper.MessageServiceUnavailable,
			"checks":  status,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checks": status})
}
