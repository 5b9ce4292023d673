package handler

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// memoryStore - хранилище каталога в памяти для тестов обработчиков
type memoryStore struct {
	mu         sync.Mutex
	questions  []entity.Question
	categories []entity.Category
	nextID     uint
	failWith   error
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{
		categories: []entity.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
			{ID: 4, Type: "History"},
			{ID: 5, Type: "Entertainment"},
			{ID: 6, Type: "Sports"},
		},
		nextID: 1,
	}
	return s
}

func (s *memoryStore) add(text string, category uint) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.questions = append(s.questions, entity.Question{
		ID: id, Question: text, Answer: "answer", Category: category, Difficulty: 1,
	})
	return id
}

// seedScience добавляет n вопросов в категорию Science и возвращает их id
func (s *memoryStore) seedScience(n int) []uint {
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = s.add("Science question", 1)
	}
	return ids
}

type memoryQuestionRepo struct{ s *memoryStore }

func (r memoryQuestionRepo) Create(_ context.Context, q *entity.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	if !slices.ContainsFunc(r.s.categories, func(c entity.Category) bool { return c.ID == q.Category }) {
		return apperrors.ErrValidation
	}
	q.ID = r.s.nextID
	r.s.nextID++
	r.s.questions = append(r.s.questions, *q)
	return nil
}

func (r memoryQuestionRepo) GetByID(_ context.Context, id uint) (*entity.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, q := range r.s.questions {
		if q.ID == id {
			found := q
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r memoryQuestionRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	i := slices.IndexFunc(r.s.questions, func(q entity.Question) bool { return q.ID == id })
	if i < 0 {
		return apperrors.ErrNotFound
	}
	r.s.questions = slices.Delete(r.s.questions, i, i+1)
	return nil
}

func (r memoryQuestionRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.questions)), nil
}

func (r memoryQuestionRepo) filter(keep func(q entity.Question) bool) ([]entity.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	result := []entity.Question{}
	for _, q := range r.s.questions {
		if keep(q) {
			result = append(result, q)
		}
	}
	return result, nil
}

func (r memoryQuestionRepo) List(_ context.Context) ([]entity.Question, error) {
	return r.filter(func(entity.Question) bool { return true })
}

func (r memoryQuestionRepo) ListByCategory(_ context.Context, categoryID uint) ([]entity.Question, error) {
	return r.filter(func(q entity.Question) bool { return q.Category == categoryID })
}

func (r memoryQuestionRepo) SearchByText(_ context.Context, term string) ([]entity.Question, error) {
	term = strings.ToLower(term)
	return r.filter(func(q entity.Question) bool { return strings.Contains(strings.ToLower(q.Question), term) })
}

func (r memoryQuestionRepo) ListEligible(_ context.Context, categoryID uint, excludeIDs []uint) ([]entity.Question, error) {
	return r.filter(func(q entity.Question) bool {
		return (categoryID == 0 || q.Category == categoryID) && !slices.Contains(excludeIDs, q.ID)
	})
}

type memoryCategoryRepo struct{ s *memoryStore }

func (r memoryCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	return slices.Clone(r.s.categories), nil
}

func (r memoryCategoryRepo) GetByID(_ context.Context, id uint) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
