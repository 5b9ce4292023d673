package entity

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Category представляет категорию вопросов
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"size:100;not null;uniqueIndex" json:"type"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// CategoryIndex - отображение id категории в её название.
// В JSON сериализуется объектом, ключи которого идут в порядке возрастания id
// (стандартный map[string]string сортировал бы их лексикографически: "1", "10", "2").
type CategoryIndex []Category

// NewCategoryIndex строит индекс, упорядоченный по id
func NewCategoryIndex(categories []Category) CategoryIndex {
	idx := make(CategoryIndex, len(categories))
	copy(idx, categories)
	sort.Slice(idx, func(i, j int) bool { return idx[i].ID < idx[j].ID })
	return idx
}

// Name возвращает название категории по id
func (idx CategoryIndex) Name(id uint) (string, bool) {
	for _, c := range idx {
		if c.ID == id {
			return c.Type, true
		}
	}
	return "", false
}

// MarshalJSON реализует json.Marshaler для CategoryIndex
func (idx CategoryIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range idx {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.FormatUint(uint64(c.ID), 10)))
		buf.WriteByte(':')
		name, err := json.Marshal(c.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
