package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// AllCategories - id категории, которым клиент выбирает вопросы из всех категорий
const AllCategories uint = 0

// Randomizer - источник случайности для выбора вопроса. *rand.Rand из math/rand/v2 ему удовлетворяет.
type Randomizer interface {
	IntN(n int) int
}

type globalRandomizer struct{}

func (globalRandomizer) IntN(n int) int { return rand.IntN(n) }

// QuizRequest - один ход викторины. Состояние сессии целиком хранится у клиента:
// каждый запрос заново присылает полный список уже показанных вопросов.
type QuizRequest struct {
	CategoryID        uint
	PreviousQuestions []uint
}

// QuizService выбирает следующий вопрос викторины
type QuizService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	rng          Randomizer
	logger       *zap.Logger
}

// NewQuizService создает новый сервис викторины. rng == nil - глобальный генератор math/rand/v2.
func NewQuizService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	rng Randomizer,
	logger *zap.Logger,
) *QuizService {
	if rng == nil {
		rng = globalRandomizer{}
	}
	return &QuizService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		rng:          rng,
		logger:       logger,
	}
}

// NextQuestion возвращает случайный вопрос выбранной категории, которого нет среди PreviousQuestions,
// и категорию, по которой фактически шел выбор (AllCategories для неизвестного id).
// Когда подходящих вопросов не осталось - ErrNoEligibleQuestions.
func (s *QuizService) NextQuestion(ctx context.Context, req QuizRequest) (*entity.Question, uint, error) {
	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, AllCategories, err
	}

	candidates, err := s.questionRepo.ListEligible(ctx, categoryID, req.PreviousQuestions)
	if err != nil {
		return nil, categoryID, fmt.Errorf("failed to load quiz candidates: %w", err)
	}

	question, err := PickQuestion(candidates, categoryID, req.PreviousQuestions, s.rng)
	return question, categoryID, err
}

// resolveCategory возвращает категорию для фильтра.
// Несуществующая категория, как и AllCategories, означает выбор из всех вопросов.
func (s *QuizService) resolveCategory(ctx context.Context, categoryID uint) (uint, error) {
	if categoryID == AllCategories {
		return AllCategories, nil
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("quiz category not found, picking from all categories",
				zap.Uint("category_id", categoryID))
			return AllCategories, nil
		}
		return 0, fmt.Errorf("failed to get quiz category #%d: %w", categoryID, err)
	}
	return category.ID, nil
}

// PickQuestion выбирает равновероятно один вопрос из подходящих:
// принадлежащих categoryID (AllCategories - любая) и отсутствующих в excluded.
// Единственный подходящий вопрос возвращается как есть.
func PickQuestion(questions []entity.Question, categoryID uint, excluded []uint, rng Randomizer) (*entity.Question, error) {
	seen := make(map[uint]struct{}, len(excluded))
	for _, id := range excluded {
		seen[id] = struct{}{}
	}

	eligible := make([]entity.Question, 0, len(questions))
	for _, q := range questions {
		if categoryID != AllCategories && q.Category != categoryID {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		eligible = append(eligible, q)
	}

	switch len(eligible) {
	case 0:
		return nil, ErrNoEligibleQuestions
	case 1:
		return &eligible[0], nil
	default:
		picked := eligible[rng.IntN(len(eligible))]
		return &picked, nil
	}
}
