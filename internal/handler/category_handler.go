package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/middleware"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// CategoryHandler обрабатывает запросы к справочнику категорий
type CategoryHandler struct {
	categoryService *service.CategoryService
	questionService *service.QuestionService
	logger          *zap.Logger
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(
	categoryService *service.CategoryService,
	questionService *service.QuestionService,
	logger *zap.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		questionService: questionService,
		logger:          logger,
	}
}

// GetCategories возвращает все категории
// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.Categories(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.CategoriesResponse{Success: true, Categories: categories})
}

// GetQuestionsByCategory возвращает страницу вопросов категории
// GET /categories/:id/questions?page=N
func (h *CategoryHandler) GetQuestionsByCategory(c *gin.Context) {
	categoryID := c.MustGet(middleware.CategoryIDKey).(uint)
	page := service.ParsePage(c.Query("page"))

	result, err := h.questionService.QuestionsByCategory(c.Request.Context(), categoryID, page)
	if err != nil {
		handleError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionPageResponse(result))
}
