package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	assert.Equal(t, Code(""), GetCode(nil))
	assert.Equal(t, CodeNotFound, GetCode(New(CodeNotFound, "нет")))
	assert.Equal(t, CodeInternal, GetCode(errors.New("что-то сломалось")))

	// Код достается из обернутой ошибки
	wrapped := fmt.Errorf("контекст: %w", New(CodeForbidden, "нельзя"))
	assert.Equal(t, CodeForbidden, GetCode(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeInvalidState, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeInsufficientBalance, http.StatusUnprocessableEntity},
		{CodeValidation, http.StatusBadRequest},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.code), string(tt.code))
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(CodeValidation, "некорректные данные")
	assert.Equal(t, "некорректные данные", err.Error())
}
