package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/handler/helper"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// handleError сопоставляет ошибку сервиса со статусом ответа.
// Неклассифицированные ошибки логируются и получают fallbackStatus.
func handleError(c *gin.Context, logger *zap.Logger, err error, fallbackStatus int) {
	status := fallbackStatus
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrBadRequest):
		status = http.StatusBadRequest
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
	}

	_ = c.Error(err)
	helper.AbortWithError(c, status)
}
