package dto

import (
	"strings"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionPageResponse - страница вопросов с контекстом категорий
type QuestionPageResponse struct {
	Success         bool                 `json:"success"`
	Questions       []QuestionResponse   `json:"questions"`
	TotalQuestions  int                  `json:"totalQuestions"`
	Categories      entity.CategoryIndex `json:"categories"`
	CurrentCategory *string              `json:"currentCategory"`
}

// CreateQuestionResponse - ответ на создание вопроса
type CreateQuestionResponse struct {
	QuestionPageResponse
	Created    uint `json:"created"`
	QuestionID uint `json:"questionID"`
}

// DeleteQuestionResponse - ответ на удаление вопроса
type DeleteQuestionResponse struct {
	Success        bool  `json:"success"`
	Deleted        uint  `json:"deleted"`
	TotalQuestions int64 `json:"totalQuestions"`
}

// SingleQuestionResponse - ответ с одним вопросом
type SingleQuestionResponse struct {
	Success  bool             `json:"success"`
	Question QuestionResponse `json:"question"`
}

// CategoriesResponse - справочник категорий
type CategoriesResponse struct {
	Success    bool                 `json:"success"`
	Categories entity.CategoryIndex `json:"categories"`
}

// QuestionsRequest - тело POST /questions.
// Непустой search (или searchTerm, в том числе из одних пробелов) означает поиск, иначе тело - новый вопрос.
type QuestionsRequest struct {
	Search     *string            `json:"search"`
	SearchTerm *string            `json:"searchTerm"`
	Question   string             `json:"question"`
	Answer     string             `json:"answer"`
	Category   *entity.FlexibleID `json:"category"`
	Difficulty *int               `json:"difficulty"`
}

// Term возвращает поисковую строку и признак того, что запрос - поиск
func (r *QuestionsRequest) Term() (string, bool) {
	for _, term := range []*string{r.Search, r.SearchTerm} {
		if term != nil && *term != "" {
			return *term, true
		}
	}
	return "", false
}

// ToEntity преобразует запрос в новый вопрос. Отсутствующие поля остаются нулевыми
// и отклоняются при валидации.
func (r *QuestionsRequest) ToEntity() *entity.Question {
	q := &entity.Question{
		Question: strings.TrimSpace(r.Question),
		Answer:   strings.TrimSpace(r.Answer),
	}
	if r.Category != nil {
		q.Category = uint(*r.Category)
	}
	if r.Difficulty != nil {
		q.Difficulty = *r.Difficulty
	}
	return q
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionListResponse создает DTO для списка вопросов. Пустой список сериализуется как [].
func NewQuestionListResponse(questions []entity.Question) []QuestionResponse {
	result := make([]QuestionResponse, len(questions))
	for i := range questions {
		result[i] = NewQuestionResponse(&questions[i])
	}
	return result
}

// NewQuestionPageResponse создает DTO для страницы вопросов
func NewQuestionPageResponse(page *service.QuestionPage) QuestionPageResponse {
	categories := page.Categories
	if categories == nil {
		categories = entity.CategoryIndex{}
	}
	return QuestionPageResponse{
		Success:         true,
		Questions:       NewQuestionListResponse(page.Questions),
		TotalQuestions:  page.Total,
		Categories:      categories,
		CurrentCategory: page.CurrentCategory,
	}
}
