package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-catalog/internal/handler/helper"
)

// Ключи контекста Gin для числовых параметров пути
const (
	QuestionIDKey = "questionID"
	CategoryIDKey = "categoryID"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// Нечисловое значение - 400 в едином формате ошибок.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
		if err != nil {
			helper.AbortWithError(c, http.StatusBadRequest)
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
