package errors

import "errors"

// Общие ошибки приложения. Обработчики сопоставляют их с HTTP-статусами через errors.Is.
var (
	// ErrNotFound используется, когда запись или ресурс не найдены (404).
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется, когда данные нельзя обработать:
	// некорректный payload создания/удаления или ошибка хранилища на этих путях (422).
	ErrValidation = errors.New("validation failed")

	// ErrBadRequest используется для синтаксически некорректного запроса клиента (400).
	ErrBadRequest = errors.New("bad request")
)
