package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// CategoryService предоставляет справочник категорий.
// Кеша нет: каждый вызов читает текущее состояние хранилища.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Categories возвращает все категории, упорядоченные по id
func (s *CategoryService) Categories(ctx context.Context) (entity.CategoryIndex, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return entity.NewCategoryIndex(categories), nil
}

// CategoryName возвращает название категории
func (s *CategoryService) CategoryName(ctx context.Context, id uint) (string, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: #%d", ErrCategoryNotFound, id)
		}
		return "", fmt.Errorf("failed to get category #%d: %w", id, err)
	}
	return category.Type, nil
}
