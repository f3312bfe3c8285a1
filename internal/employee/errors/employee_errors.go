package employeeerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.Conflict(
		"Employee with the same email already exists",
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)

func NotFound(id uint) error {
	return apperror.WithMessage(ErrEmployeeNotFound, "Employee with id %d not found", id)
}

func EmailTaken(email string) error {
	return apperror.WithMessage(ErrEmployeeAlreadyExists, "Employee with email %s already exists", email)
}
