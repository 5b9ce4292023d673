package repository

import (
	"context"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Все списки возвращаются упорядоченными по id, чтобы страницы были стабильными.
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]entity.Question, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error)

	// SearchByText ищет вопросы, текст которых содержит term без учёта регистра
	SearchByText(ctx context.Context, term string) ([]entity.Question, error)

	// ListEligible возвращает вопросы для викторины.
	// categoryID == 0 означает все категории; excludeIDs исключаются из выборки.
	ListEligible(ctx context.Context, categoryID uint, excludeIDs []uint) ([]entity.Question, error)
}
