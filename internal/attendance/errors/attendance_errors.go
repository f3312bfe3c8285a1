package attendanceerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrAttendanceAlreadyExists = apperror.Conflict(
		"Attendance already recorded for this employee on this date",
	)
	ErrInvalidAttendanceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance ID",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

func NotFound(id uint) error {
	return apperror.WithMessage(ErrAttendanceNotFound, "Attendance record with id %d not found", id)
}

func AlreadyExists(employeeID uint, date string) error {
	return apperror.WithMessage(ErrAttendanceAlreadyExists,
		"Attendance for employee %d on %s already exists", employeeID, date)
}

func InvalidDate(date string) error {
	return apperror.WithMessage(ErrInvalidDate, "Invalid date %q, expected YYYY-MM-DD", date)
}
