package memstore_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"go-hrms/internal/attendance"
	"go-hrms/internal/employee"
	"go-hrms/internal/shared/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(t *testing.T, s string) attendance.Attendance {
	t.Helper()
	d, err := attendance.ParseDate(s)
	require.NoError(t, err)
	return attendance.Attendance{Date: d}
}

func seedEmployee(t *testing.T, repo employee.Repository, name, email string) employee.Employee {
	t.Helper()
	empl := employee.Employee{FullName: name, Email: email}
	require.NoError(t, repo.Create(context.Background(), &empl))
	return empl
}

func TestEmployeeRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("ids are sequential and listing keeps insertion order", func(t *testing.T) {
		repo := memstore.New().Employees()

		a := seedEmployee(t, repo, "Ada", "ada@x.com")
		b := seedEmployee(t, repo, "Alan", "alan@x.com")

		assert.Equal(t, uint(1), a.ID)
		assert.Equal(t, uint(2), b.ID)
		assert.Equal(t, employee.DefaultDepartment, a.Department)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Ada", all[0].FullName)
		assert.Equal(t, "Alan", all[1].FullName)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := memstore.New().Employees()
		seedEmployee(t, repo, "Ada", "ada@x.com")

		err := repo.Create(ctx, &employee.Employee{FullName: "Other", Email: "ada@x.com"})

		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("email match is case sensitive", func(t *testing.T) {
		repo := memstore.New().Employees()
		seedEmployee(t, repo, "Ada", "ada@x.com")

		err := repo.Create(ctx, &employee.Employee{FullName: "Ada", Email: "ADA@x.com"})

		assert.NoError(t, err)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		repo := memstore.New().Employees()
		a := seedEmployee(t, repo, "Ada", "ada@x.com")
		require.NoError(t, repo.Delete(ctx, a.ID))

		b := seedEmployee(t, repo, "Alan", "alan@x.com")

		assert.Equal(t, uint(2), b.ID)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		repo := memstore.New().Employees()
		a := seedEmployee(t, repo, "Ada", "ada@x.com")

		got, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		got.FullName = "Mutated"

		again, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", again.FullName)
	})

	t.Run("update rejects an email held by someone else", func(t *testing.T) {
		repo := memstore.New().Employees()
		seedEmployee(t, repo, "Ada", "ada@x.com")
		b := seedEmployee(t, repo, "Alan", "alan@x.com")

		b.Email = "ada@x.com"
		err := repo.Update(ctx, &b)

		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("update keeping own email", func(t *testing.T) {
		repo := memstore.New().Employees()
		a := seedEmployee(t, repo, "Ada", "ada@x.com")

		a.FullName = "Ada King"
		require.NoError(t, repo.Update(ctx, &a))

		got, err := repo.FindByEmail(ctx, "ada@x.com")
		require.NoError(t, err)
		assert.Equal(t, "Ada King", got.FullName)
	})

	t.Run("missing rows", func(t *testing.T) {
		repo := memstore.New().Employees()

		_, err := repo.FindByID(ctx, 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		_, err = repo.FindByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.ErrorIs(t, repo.Update(ctx, &employee.Employee{ID: 1}), gorm.ErrRecordNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 1), gorm.ErrRecordNotFound)
	})

	t.Run("concurrent creates with one email admit exactly one", func(t *testing.T) {
		repo := memstore.New().Employees()

		var wg sync.WaitGroup
		var created, rejected atomic.Int32
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := repo.Create(ctx, &employee.Employee{FullName: fmt.Sprintf("E%d", i), Email: "same@x.com"})
				if err == nil {
					created.Add(1)
				} else if assert.ErrorIs(t, err, gorm.ErrDuplicatedKey) {
					rejected.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), created.Load())
		assert.Equal(t, int32(19), rejected.Load())
	})
}

func TestAttendanceRepo(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*memstore.Store, employee.Employee) {
		store := memstore.New()
		return store, seedEmployee(t, store.Employees(), "Ada", "ada@x.com")
	}

	t.Run("create and look up by day", func(t *testing.T) {
		store, ada := setup(t)
		repo := store.Attendance()

		row := day(t, "2024-01-15")
		row.EmployeeID = ada.ID
		row.Status = "Present"
		require.NoError(t, repo.Create(ctx, &row))
		assert.Equal(t, uint(1), row.ID)

		got, err := repo.FindByEmployeeAndDate(ctx, ada.ID, row.Date)
		require.NoError(t, err)
		assert.Equal(t, "Present", got.Status)

		byDate, err := repo.FindAllByDate(ctx, day(t, "2024-01-15").Date)
		require.NoError(t, err)
		assert.Len(t, byDate, 1)

		other, err := repo.FindAllByDate(ctx, day(t, "2024-01-16").Date)
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("unknown employee violates the foreign key", func(t *testing.T) {
		store, _ := setup(t)

		row := day(t, "2024-01-15")
		row.EmployeeID = 99
		row.Status = "Present"

		assert.ErrorIs(t, store.Attendance().Create(ctx, &row), gorm.ErrForeignKeyViolated)
	})

	t.Run("one record per employee per day", func(t *testing.T) {
		store, ada := setup(t)
		repo := store.Attendance()

		first := day(t, "2024-01-15")
		first.EmployeeID, first.Status = ada.ID, "Present"
		require.NoError(t, repo.Create(ctx, &first))

		second := day(t, "2024-01-15")
		second.EmployeeID, second.Status = ada.ID, "Absent"

		assert.ErrorIs(t, repo.Create(ctx, &second), gorm.ErrDuplicatedKey)
	})

	t.Run("update onto an occupied day", func(t *testing.T) {
		store, ada := setup(t)
		repo := store.Attendance()

		a := day(t, "2024-01-15")
		a.EmployeeID, a.Status = ada.ID, "Present"
		require.NoError(t, repo.Create(ctx, &a))
		b := day(t, "2024-01-16")
		b.EmployeeID, b.Status = ada.ID, "Present"
		require.NoError(t, repo.Create(ctx, &b))

		b.Date = a.Date
		assert.ErrorIs(t, repo.Update(ctx, &b), gorm.ErrDuplicatedKey)

		a.Status = "Late"
		assert.NoError(t, repo.Update(ctx, &a))
	})

	t.Run("employee delete cascades", func(t *testing.T) {
		store, ada := setup(t)
		alan := seedEmployee(t, store.Employees(), "Alan", "alan@x.com")
		repo := store.Attendance()

		for _, id := range []uint{ada.ID, alan.ID} {
			row := day(t, "2024-01-15")
			row.EmployeeID, row.Status = id, "Present"
			require.NoError(t, repo.Create(ctx, &row))
		}

		require.NoError(t, store.Employees().Delete(ctx, ada.ID))

		rows, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, alan.ID, rows[0].EmployeeID)

		byEmployee, err := repo.FindAllByEmployee(ctx, ada.ID)
		require.NoError(t, err)
		assert.Empty(t, byEmployee)
	})

	t.Run("by employee is ordered by date", func(t *testing.T) {
		store, ada := setup(t)
		repo := store.Attendance()

		for _, d := range []string{"2024-01-17", "2024-01-15", "2024-01-16"} {
			row := day(t, d)
			row.EmployeeID, row.Status = ada.ID, "Present"
			require.NoError(t, repo.Create(ctx, &row))
		}

		rows, err := repo.FindAllByEmployee(ctx, ada.ID)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "2024-01-15", rows[0].Date.Format(attendance.DateLayout))
		assert.Equal(t, "2024-01-17", rows[2].Date.Format(attendance.DateLayout))
	})

	t.Run("delete missing", func(t *testing.T) {
		store, _ := setup(t)

		assert.ErrorIs(t, store.Attendance().Delete(ctx, 3), gorm.ErrRecordNotFound)
	})
}
