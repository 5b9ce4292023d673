package dto

import (
	"fmt"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// QuizCategory - категория викторины. id 0 означает все категории.
type QuizCategory struct {
	ID   *entity.FlexibleID `json:"id"`
	Type string             `json:"type"`
}

// QuizRequest - тело POST /quizzes
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category"`
	PreviousQuestions *[]uint       `json:"previous_questions"`
}

// ToServiceRequest проверяет обязательные поля и преобразует запрос для QuizService
func (r *QuizRequest) ToServiceRequest() (service.QuizRequest, error) {
	if r.QuizCategory == nil || r.QuizCategory.ID == nil {
		return service.QuizRequest{}, fmt.Errorf("%w: quiz_category.id is required", service.ErrBadQuizRequest)
	}
	if r.PreviousQuestions == nil {
		return service.QuizRequest{}, fmt.Errorf("%w: previous_questions is required", service.ErrBadQuizRequest)
	}
	return service.QuizRequest{
		CategoryID:        uint(*r.QuizCategory.ID),
		PreviousQuestions: *r.PreviousQuestions,
	}, nil
}

// QuizResponse - следующий вопрос викторины.
// Question - либо QuestionResponse, либо false, когда вопросы закончились.
type QuizResponse struct {
	Success  bool        `json:"success"`
	Question interface{} `json:"question"`
}

// NewQuizResponse создает ответ викторины. q == nil - вопросы закончились.
func NewQuizResponse(q *entity.Question) QuizResponse {
	if q == nil {
		return QuizResponse{Success: true, Question: false}
	}
	return QuizResponse{Success: true, Question: NewQuestionResponse(q)}
}
