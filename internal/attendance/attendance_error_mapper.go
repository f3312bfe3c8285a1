package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-hrms/internal/attendance/errors"
	employeeerrors "go-hrms/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const employeeDateConstraint = "uq_attendance_employee_date"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return attendanceerrors.ErrAttendanceNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return attendanceerrors.ErrAttendanceAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == employeeDateConstraint:
			return attendanceerrors.ErrAttendanceAlreadyExists
		case pgErr.Code == "23503":
			return employeeerrors.ErrEmployeeNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, employeeDateConstraint) {
		return attendanceerrors.ErrAttendanceAlreadyExists
	}

	return err
}
