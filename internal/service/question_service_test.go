package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

func newTestQuestionService() (*QuestionService, *MockQuestionRepository, *MockCategoryRepository) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	return NewQuestionService(questionRepo, NewCategoryService(categoryRepo)), questionRepo, categoryRepo
}

func TestQuestionService_ListQuestions_Success(t *testing.T) {
	// Arrange
	svc, questionRepo, categoryRepo := newTestQuestionService()
	questionRepo.On("List", mock.Anything).Return(makeQuestions(19, 1), nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories(), nil)

	// Act
	page, err := svc.ListQuestions(context.Background(), 2)

	// Assert
	require.NoError(t, err)
	assert.Len(t, page.Questions, 9)
	assert.Equal(t, uint(11), page.Questions[0].ID)
	assert.Equal(t, 19, page.Total)
	assert.Len(t, page.Categories, 3)
	assert.Nil(t, page.CurrentCategory)
}

func TestQuestionService_ListQuestions_EmptyPageIsNotFound(t *testing.T) {
	// Arrange
	svc, questionRepo, categoryRepo := newTestQuestionService()
	questionRepo.On("List", mock.Anything).Return(makeQuestions(19, 1), nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories(), nil)

	// Act
	page, err := svc.ListQuestions(context.Background(), 100)

	// Assert
	assert.Nil(t, page)
	assert.ErrorIs(t, err, ErrPageNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionService_ListQuestions_StoreError(t *testing.T) {
	svc, questionRepo, _ := newTestQuestionService()
	questionRepo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.ListQuestions(context.Background(), 1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound, "Ошибка хранилища не должна выглядеть как 404")
}

func TestQuestionService_QuestionsByCategory_Success(t *testing.T) {
	// Arrange
	svc, questionRepo, categoryRepo := newTestQuestionService()
	categoryRepo.On("GetByID", mock.Anything, uint(1)).Return(&entity.Category{ID: 1, Type: "Science"}, nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories(), nil)
	questionRepo.On("ListByCategory", mock.Anything, uint(1)).Return(makeQuestions(3, 1), nil)

	// Act
	page, err := svc.QuestionsByCategory(context.Background(), 1, 1)

	// Assert
	require.NoError(t, err)
	assert.Len(t, page.Questions, 3)
	assert.Equal(t, 3, page.Total)
	require.NotNil(t, page.CurrentCategory)
	assert.Equal(t, "Science", *page.CurrentCategory)
}

func TestQuestionService_QuestionsByCategory_UnknownCategory(t *testing.T) {
	svc, questionRepo, categoryRepo := newTestQuestionService()
	categoryRepo.On("GetByID", mock.Anything, uint(100)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.QuestionsByCategory(context.Background(), 100, 1)

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	questionRepo.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
}

func TestQuestionService_QuestionsByCategory_EmptyCategory(t *testing.T) {
	svc, questionRepo, categoryRepo := newTestQuestionService()
	categoryRepo.On("GetByID", mock.Anything, uint(2)).Return(&entity.Category{ID: 2, Type: "Art"}, nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories(), nil)
	questionRepo.On("ListByCategory", mock.Anything, uint(2)).Return([]entity.Question{}, nil)

	_, err := svc.QuestionsByCategory(context.Background(), 2, 1)

	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestQuestionService_Search_Found(t *testing.T) {
	// Arrange
	svc, questionRepo, categoryRepo := newTestQuestionService()
	match := entity.Question{ID: 5, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Category: 4}
	questionRepo.On("SearchByText", mock.Anything, "title").Return([]entity.Question{match}, nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories(), nil)

	// Act
	page, err := svc.Search(context.Background(), "title", 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Questions, 1)
	assert.Equal(t, uint(5), page.Questions[0].ID)
}

func TestQuestionService_Search_NoMatchesIsSuccess(t *testing.T) {
	svc, questionRepo, categoryRepo := newTestQuestionService()
	questionRepo.On("SearchByText", mock.Anything, "abcdefghijk").Return([]entity.Question{}, nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories(), nil)

	page, err := svc.Search(context.Background(), "abcdefghijk", 1)

	require.NoError(t, err, "Пустой результат поиска - не ошибка")
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Questions)
	assert.Empty(t, page.Questions)
}

func TestQuestionService_CreateQuestion_Success(t *testing.T) {
	// Arrange
	svc, questionRepo, categoryRepo := newTestQuestionService()
	existing := makeQuestions(3, 1)
	newQuestion := &entity.Question{
		Question:   "Which four states make up the 4 Corners region of the US?",
		Answer:     "Colorado, New Mexico, Arizona, Utah",
		Category:   3,
		Difficulty: 3,
	}

	questionRepo.On("Create", mock.Anything, newQuestion).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Question).ID = 4
	}).Return(nil)
	questionRepo.On("List", mock.Anything).Return(append(existing, *newQuestion), nil)
	categoryRepo.On("List", mock.Anything).Return(testCategories(), nil)

	// Act
	page, err := svc.CreateQuestion(context.Background(), newQuestion, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(4), newQuestion.ID, "ID должен быть назначен хранилищем")
	assert.Equal(t, 4, page.Total, "Количество вопросов должно увеличиться ровно на 1")
	questionRepo.AssertExpectations(t)
}

func TestQuestionService_CreateQuestion_Invalid(t *testing.T) {
	svc, questionRepo, _ := newTestQuestionService()

	_, err := svc.CreateQuestion(context.Background(), &entity.Question{}, 1)

	assert.ErrorIs(t, err, ErrInvalidQuestion)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	questionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuestionService_CreateQuestion_UnknownCategory(t *testing.T) {
	svc, questionRepo, _ := newTestQuestionService()
	q := &entity.Question{Question: "Q?", Answer: "A", Category: 99, Difficulty: 1}
	questionRepo.On("Create", mock.Anything, q).Return(apperrors.ErrValidation)

	_, err := svc.CreateQuestion(context.Background(), q, 1)

	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestQuestionService_DeleteQuestion_Success(t *testing.T) {
	// Arrange
	svc, questionRepo, _ := newTestQuestionService()
	questionRepo.On("Delete", mock.Anything, uint(7)).Return(nil)
	questionRepo.On("Count", mock.Anything).Return(int64(18), nil)

	// Act
	total, err := svc.DeleteQuestion(context.Background(), 7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(18), total)
	questionRepo.AssertExpectations(t)
}

func TestQuestionService_DeleteQuestion_NotFound(t *testing.T) {
	svc, questionRepo, _ := newTestQuestionService()
	questionRepo.On("Delete", mock.Anything, uint(1000)).Return(apperrors.ErrNotFound)

	_, err := svc.DeleteQuestion(context.Background(), 1000)

	assert.ErrorIs(t, err, ErrQuestionNotFound)
	questionRepo.AssertNotCalled(t, "Count", mock.Anything)
}

func TestQuestionService_DeleteQuestion_StoreError(t *testing.T) {
	svc, questionRepo, _ := newTestQuestionService()
	questionRepo.On("Delete", mock.Anything, uint(3)).Return(errors.New("deadlock detected"))

	_, err := svc.DeleteQuestion(context.Background(), 3)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionService_GetQuestion(t *testing.T) {
	svc, questionRepo, _ := newTestQuestionService()
	questionRepo.On("GetByID", mock.Anything, uint(4)).Return(&entity.Question{ID: 4}, nil)
	questionRepo.On("GetByID", mock.Anything, uint(5)).Return(nil, apperrors.ErrNotFound)

	q, err := svc.GetQuestion(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint(4), q.ID)

	_, err = svc.GetQuestion(context.Background(), 5)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestCategoryService_Categories_OrderedByID(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("List", mock.Anything).Return([]entity.Category{{ID: 3, Type: "Geography"}, {ID: 1, Type: "Science"}}, nil)
	svc := NewCategoryService(categoryRepo)

	categories, err := svc.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, uint(1), categories[0].ID)
	assert.Equal(t, uint(3), categories[1].ID)
}

func TestCategoryService_CategoryName_StoreError(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("GetByID", mock.Anything, uint(1)).Return(nil, errors.New("timeout"))
	svc := NewCategoryService(categoryRepo)

	_, err := svc.CategoryName(context.Background(), 1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCategoryNotFound)
}
