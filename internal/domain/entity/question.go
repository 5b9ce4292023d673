package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Границы сложности вопроса
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question представляет вопрос викторины
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"column:question;type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
	Category   uint   `gorm:"not null;index" json:"category"`
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Validate проверяет вопрос перед сохранением
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is required")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("answer is required")
	}
	if q.Category == 0 {
		return fmt.Errorf("category is required")
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty must be between %d and %d, got %d", MinDifficulty, MaxDifficulty, q.Difficulty)
	}
	return nil
}

// FlexibleID - идентификатор, который клиенты присылают и числом (3), и строкой ("3").
// Nil-указатель означает, что поле отсутствовало в запросе.
type FlexibleID uint

// UnmarshalJSON реализует json.Unmarshaler для FlexibleID
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("id must not be null")
	}

	var s string
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
	} else {
		s = raw
	}

	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q: not a non-negative integer", s)
	}
	*f = FlexibleID(id)
	return nil
}
