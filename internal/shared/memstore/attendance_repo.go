package memstore

import (
	"context"
	"sort"
	"time"

	"go-hrms/internal/attendance"

	"gorm.io/gorm"
)

type attendanceRepo struct {
	s *Store
}

func (r *attendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkWrite(0, a.EmployeeID, a.Date); err != nil {
		return err
	}

	now := r.s.now()
	a.ID = r.s.nextAttendanceID
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Employee = nil

	r.s.nextAttendanceID++
	r.s.attendance = append(r.s.attendance, *a)
	return nil
}

func (r *attendanceRepo) FindAll(ctx context.Context) ([]attendance.Attendance, error) {
	return r.filter(func(attendance.Attendance) bool { return true }), nil
}

func (r *attendanceRepo) FindByID(ctx context.Context, id uint) (*attendance.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.attendanceIndex(id)
	if i < 0 {
		return nil, gorm.ErrRecordNotFound
	}
	row := r.s.attendance[i]
	return &row, nil
}

func (r *attendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*attendance.Attendance, error) {
	rows := r.filter(func(a attendance.Attendance) bool {
		return a.EmployeeID == employeeID && attendance.SameDay(a.Date, date)
	})
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *attendanceRepo) FindAllByEmployee(ctx context.Context, employeeID uint) ([]attendance.Attendance, error) {
	rows := r.filter(func(a attendance.Attendance) bool { return a.EmployeeID == employeeID })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func (r *attendanceRepo) FindAllByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return r.filter(func(a attendance.Attendance) bool { return attendance.SameDay(a.Date, date) }), nil
}

func (r *attendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.attendanceIndex(a.ID)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	if err := r.checkWrite(a.ID, a.EmployeeID, a.Date); err != nil {
		return err
	}

	stored := &r.s.attendance[i]
	stored.EmployeeID = a.EmployeeID
	stored.Date = a.Date
	stored.Status = a.Status
	stored.UpdatedAt = r.s.now()

	*a = *stored
	return nil
}

func (r *attendanceRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.attendanceIndex(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	r.s.attendance = append(r.s.attendance[:i], r.s.attendance[i+1:]...)
	return nil
}

// checkWrite enforces the foreign key and the one-record-per-day index,
// ignoring the row being updated. Callers hold the write lock.
func (r *attendanceRepo) checkWrite(self, employeeID uint, date time.Time) error {
	if r.s.employeeIndex(employeeID) < 0 {
		return gorm.ErrForeignKeyViolated
	}
	for _, a := range r.s.attendance {
		if a.ID != self && a.EmployeeID == employeeID && attendance.SameDay(a.Date, date) {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

// filter returns copies in insertion (id) order.
func (r *attendanceRepo) filter(keep func(attendance.Attendance) bool) []attendance.Attendance {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]attendance.Attendance, 0, len(r.s.attendance))
	for _, a := range r.s.attendance {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
