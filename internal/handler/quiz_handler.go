package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/service"
	"github.com/yourusername/trivia-catalog/pkg/monitoring"
)

// QuizHandler обрабатывает ходы викторины
type QuizHandler struct {
	quizService *service.QuizService
	metrics     *monitoring.Metrics
	logger      *zap.Logger
}

// NewQuizHandler создает новый обработчик викторины
func NewQuizHandler(quizService *service.QuizService, metrics *monitoring.Metrics, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		metrics:     metrics,
		logger:      logger,
	}
}

// NextQuestion возвращает следующий вопрос викторины или {"question": false}, если вопросы закончились
// POST /quizzes
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	var req dto.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid quiz request body", zap.Error(err))
		handleError(c, h.logger, service.ErrBadQuizRequest, http.StatusBadRequest)
		return
	}

	quizReq, err := req.ToServiceRequest()
	if err != nil {
		handleError(c, h.logger, err, http.StatusBadRequest)
		return
	}

	question, categoryID, err := h.quizService.NextQuestion(c.Request.Context(), quizReq)
	if errors.Is(err, service.ErrNoEligibleQuestions) {
		h.metrics.ObserveQuizExhausted()
		c.JSON(http.StatusOK, dto.NewQuizResponse(nil))
		return
	}
	if err != nil {
		handleError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveQuizQuestion(categoryID)
	c.JSON(http.StatusOK, dto.NewQuizResponse(question))
}
