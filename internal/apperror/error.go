package apperror

import (
	"errors"
	"net/http"
)

// Code - машиночитаемый код ошибки, который возвращается клиенту
type Code string

const (
	CodeUnauthenticated     Code = "unauthenticated"
	CodeForbidden           Code = "forbidden"
	CodeNotFound            Code = "not_found"
	CodeInvalidState        Code = "invalid_state"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeConflict            Code = "conflict"
	CodeValidation          Code = "validation"
	CodeInternal            Code = "internal"
)

// Error - ошибка уровня приложения с кодом из таксономии
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// GetCode извлекает код из цепочки ошибок; всё неопознанное считается internal
func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// HTTPStatus отображает код ошибки на HTTP-статус ответа
func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState, CodeConflict:
		return http.StatusConflict
	case CodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
