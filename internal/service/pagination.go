package service

import "strconv"

// PageSize - фиксированный размер страницы списка вопросов
const PageSize = 10

// Paginate возвращает страницу page (нумерация с 1) из упорядоченного среза items.
// Срез не копируется и не пересортировывается; страница за пределами диапазона
// или page < 1 дают пустой (не nil) результат без ошибки.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		return []T{}
	}

	// Сравниваем номера страниц, а не смещения: (page-1)*PageSize переполняется на огромных page
	totalPages := (len(items) + PageSize - 1) / PageSize
	if page > totalPages {
		return []T{}
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end:end]
}

// ParsePage разбирает query-параметр page. Отсутствующее или нечисловое значение дает 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
