package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// QuestionPage - одна страница списка вопросов вместе с контекстом для клиента
type QuestionPage struct {
	Questions  []entity.Question
	Total      int
	Categories entity.CategoryIndex
	// CurrentCategory заполняется только при фильтрации по категории
	CurrentCategory *string
}

// QuestionService предоставляет методы для работы с каталогом вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categories   *CategoryService
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, categories *CategoryService) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categories:   categories,
	}
}

// ListQuestions возвращает страницу всех вопросов.
// Пустая страница - ErrPageNotFound.
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	result, err := s.buildPage(ctx, questions, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("%w: page %d", ErrPageNotFound, page)
	}
	return result, nil
}

// QuestionsByCategory возвращает страницу вопросов одной категории.
// Неизвестная категория - ErrCategoryNotFound, пустая страница - ErrPageNotFound.
func (s *QuestionService) QuestionsByCategory(ctx context.Context, categoryID uint, page int) (*QuestionPage, error) {
	name, err := s.categories.CategoryName(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions of category #%d: %w", categoryID, err)
	}

	result, err := s.buildPage(ctx, questions, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("%w: category #%d, page %d", ErrPageNotFound, categoryID, page)
	}
	result.CurrentCategory = &name
	return result, nil
}

// Search возвращает страницу вопросов, текст которых содержит term (без учёта регистра).
// Отсутствие совпадений - успешный пустой результат.
func (s *QuestionService) Search(ctx context.Context, term string, page int) (*QuestionPage, error) {
	questions, err := s.questionRepo.SearchByText(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions by %q: %w", term, err)
	}
	return s.buildPage(ctx, questions, page)
}

// CreateQuestion сохраняет новый вопрос и возвращает его вместе со страницей page общего списка
func (s *QuestionService) CreateQuestion(ctx context.Context, question *entity.Question, page int) (*QuestionPage, error) {
	if err := question.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
		}
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return s.buildPage(ctx, questions, page)
}

// DeleteQuestion удаляет вопрос и возвращает оставшееся количество вопросов
func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) (int64, error) {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: #%d", ErrQuestionNotFound, id)
		}
		return 0, fmt.Errorf("failed to delete question #%d: %w", id, err)
	}

	total, err := s.questionRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}

// GetQuestion возвращает вопрос по id
func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: #%d", ErrQuestionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get question #%d: %w", id, err)
	}
	return question, nil
}

// AllQuestions возвращает весь каталог без пагинации (для экспорта)
func (s *QuestionService) AllQuestions(ctx context.Context) ([]entity.Question, entity.CategoryIndex, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list questions: %w", err)
	}
	categories, err := s.categories.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return questions, categories, nil
}

func (s *QuestionService) buildPage(ctx context.Context, questions []entity.Question, page int) (*QuestionPage, error) {
	categories, err := s.categories.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{
		Questions:  Paginate(questions, page),
		Total:      len(questions),
		Categories: categories,
	}, nil
}
