// Package memstore keeps employees and attendance in process memory. It is
// the default backend and honours the same constraints as the Postgres
// schema: unique email, unique (employee_id, date), the employee foreign key
// and cascading delete. Errors are the gorm sentinels the Postgres
// repositories return with TranslateError enabled.
package memstore

import (
	"sync"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/employee"
)

// Store owns both collections. A single lock covers both so that the
// cascade on employee delete and the foreign key check on attendance writes
// see a consistent view.
type Store struct {
	mu sync.RWMutex

	employees  []employee.Employee
	attendance []attendance.Attendance

	nextEmployeeID   uint
	nextAttendanceID uint

	now func() time.Time
}

func New() *Store {
	return &Store{
		nextEmployeeID:   1,
		nextAttendanceID: 1,
		now:              time.Now,
	}
}

// Employees returns the employee repository view of the store.
func (s *Store) Employees() employee.Repository {
	return &employeeRepo{s: s}
}

// Attendance returns the attendance repository view of the store.
func (s *Store) Attendance() attendance.Repository {
	return &attendanceRepo{s: s}
}

func (s *Store) employeeIndex(id uint) int {
	for i := range s.employees {
		if s.employees[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) attendanceIndex(id uint) int {
	for i := range s.attendance {
		if s.attendance[i].ID == id {
			return i
		}
	}
	return -1
}
