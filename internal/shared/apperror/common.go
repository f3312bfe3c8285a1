package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField reports a missing mandatory field.
func RequiredField(field string) *AppError {
	return WithMessage(ErrInvalidInput, "%s is required", field)
}

// InvalidField reports a field whose value failed validation.
func InvalidField(field string) *AppError {
	return WithMessage(ErrInvalidInput, "%s is invalid", field)
}

// Conflict builds a uniqueness violation. The API reports these as 400.
func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusBadRequest)
}

func errorf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
