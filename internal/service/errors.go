package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// Типизированные ошибки сервисов. Каждая оборачивает общую ошибку из apperrors,
// поэтому обработчики сопоставляют их со статусами через errors.Is.
var (
	ErrQuestionNotFound = fmt.Errorf("question not found: %w", apperrors.ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category not found: %w", apperrors.ErrNotFound)
	ErrPageNotFound     = fmt.Errorf("page has no questions: %w", apperrors.ErrNotFound)

	ErrInvalidQuestion = fmt.Errorf("invalid question: %w", apperrors.ErrValidation)

	ErrBadQuizRequest = fmt.Errorf("bad quiz request: %w", apperrors.ErrBadRequest)

	// ErrNoEligibleQuestions означает, что викторина окончена: подходящих вопросов не осталось.
	// Это не ошибка клиента, обработчик отвечает {"question": false}.
	ErrNoEligibleQuestions = errors.New("no eligible questions left")
)
