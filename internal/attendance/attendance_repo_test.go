package attendance_test

import (
	"context"
	"regexp"
	"testing"

	"go-hrms/internal/attendance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (attendance.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return attendance.NewRepository(gormDB), mock
}

var attendanceColumns = []string{"id", "employee_id", "date", "status"}

func TestAttendanceRepository_FindByEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	day, err := attendance.ParseDate("2024-01-15")
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "attendances" WHERE employee_id = $1 AND date = $2`)).
			WillReturnRows(sqlmock.NewRows(attendanceColumns).AddRow(3, 1, day, "Present"))

		row, err := repo.FindByEmployeeAndDate(ctx, 1, day)

		require.NoError(t, err)
		assert.Equal(t, uint(3), row.ID)
		assert.Equal(t, "Present", row.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("free day", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "attendances" WHERE employee_id = $1 AND date = $2`)).
			WillReturnRows(sqlmock.NewRows(attendanceColumns))

		row, err := repo.FindByEmployeeAndDate(ctx, 1, day)

		assert.Nil(t, row)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestAttendanceRepository_FindAllByDate(t *testing.T) {
	repo, mock := setupRepoTest(t)
	day, err := attendance.ParseDate("2024-01-15")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "attendances" WHERE date = $1 ORDER BY id ASC`)).
		WithArgs("2024-01-15").
		WillReturnRows(sqlmock.NewRows(attendanceColumns).
			AddRow(1, 1, day, "Present").
			AddRow(2, 2, day, "Absent"))

	rows, err := repo.FindAllByDate(context.Background(), day)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_Delete(t *testing.T) {
	t.Run("missing row", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "attendances" WHERE "attendances"."id" = $1`)).
			WithArgs(4).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), 4)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
