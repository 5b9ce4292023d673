package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/middleware"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// QuestionHandler обрабатывает запросы к каталогу вопросов
type QuestionHandler struct {
	questionService *service.QuestionService
	logger          *zap.Logger
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

// ListQuestions возвращает страницу всех вопросов
// GET /questions?page=N
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page := service.ParsePage(c.Query("page"))

	result, err := h.questionService.ListQuestions(c.Request.Context(), page)
	if err != nil {
		handleError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionPageResponse(result))
}

// GetQuestion возвращает вопрос по id
// GET /questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet(middleware.QuestionIDKey).(uint)

	question, err := h.questionService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		handleError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.SingleQuestionResponse{Success: true, Question: dto.NewQuestionResponse(question)})
}

// DeleteQuestion удаляет вопрос
// DELETE /questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet(middleware.QuestionIDKey).(uint)

	total, err := h.questionService.DeleteQuestion(c.Request.Context(), questionID)
	if err != nil {
		handleError(c, h.logger, err, http.StatusUnprocessableEntity)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteQuestionResponse{
		Success:        true,
		Deleted:        questionID,
		TotalQuestions: total,
	})
}

// CreateOrSearchQuestions создает вопрос или, если в теле есть непустой search, ищет по тексту.
// Любая ошибка в обеих ветках - 422.
// POST /questions?page=N
func (h *QuestionHandler) CreateOrSearchQuestions(c *gin.Context) {
	var req dto.QuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid questions request body", zap.Error(err))
		handleError(c, h.logger, service.ErrInvalidQuestion, http.StatusUnprocessableEntity)
		return
	}
	page := service.ParsePage(c.Query("page"))

	if term, ok := req.Term(); ok {
		h.searchQuestions(c, term, page)
		return
	}
	h.createQuestion(c, &req, page)
}

func (h *QuestionHandler) searchQuestions(c *gin.Context, term string, page int) {
	result, err := h.questionService.Search(c.Request.Context(), term, page)
	if err != nil {
		handleError(c, h.logger, err, http.StatusUnprocessableEntity)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionPageResponse(result))
}

func (h *QuestionHandler) createQuestion(c *gin.Context, req *dto.QuestionsRequest, page int) {
	question := req.ToEntity()

	result, err := h.questionService.CreateQuestion(c.Request.Context(), question, page)
	if err != nil {
		handleError(c, h.logger, err, http.StatusUnprocessableEntity)
		return
	}

	h.logger.Info("question created", zap.Uint("question_id", question.ID), zap.Uint("category", question.Category))
	c.JSON(http.StatusOK, dto.CreateQuestionResponse{
		QuestionPageResponse: dto.NewQuestionPageResponse(result),
		Created:              question.ID,
		QuestionID:           question.ID,
	})
}
