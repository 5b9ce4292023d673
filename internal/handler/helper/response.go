package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Сообщения об ошибках. Клиенты сравнивают их как строки, менять нельзя.
const (
	MessageBadRequest          = "Bad Request"
	MessageNotFound            = "Resource Not Found"
	MessageMethodNotAllowed    = "Method Not Allowed"
	MessageUnprocessable       = "Unprocessable"
	MessageTooManyRequests     = "Too Many Requests"
	MessageInternalServerError = "Internal Server Error"
	MessageServiceUnavailable  = "Service Unavailable"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          MessageBadRequest,
	http.StatusNotFound:            MessageNotFound,
	http.StatusMethodNotAllowed:    MessageMethodNotAllowed,
	http.StatusUnprocessableEntity: MessageUnprocessable,
	http.StatusTooManyRequests:     MessageTooManyRequests,
	http.StatusInternalServerError: MessageInternalServerError,
	http.StatusServiceUnavailable:  MessageServiceUnavailable,
}

// ErrorResponse - единый формат ответа об ошибке
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse собирает тело ответа для статуса
func NewErrorResponse(status int) ErrorResponse {
	message, ok := statusMessages[status]
	if !ok {
		message = http.StatusText(status)
	}
	return ErrorResponse{Success: false, Error: status, Message: message}
}

// AbortWithError прерывает цепочку обработчиков и отвечает ошибкой в едином формате
func AbortWithError(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, NewErrorResponse(status))
}
