package memstore

import (
	"context"

	"go-hrms/internal/employee"

	"gorm.io/gorm"
)

type employeeRepo struct {
	s *Store
}

func (r *employeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailOwner(empl.Email) != 0 {
		return gorm.ErrDuplicatedKey
	}

	now := r.s.now()
	empl.ID = r.s.nextEmployeeID
	empl.CreatedAt = now
	empl.UpdatedAt = now
	if empl.Department == "" {
		empl.Department = employee.DefaultDepartment
	}

	r.s.nextEmployeeID++
	r.s.employees = append(r.s.employees, *empl)
	return nil
}

func (r *employeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]employee.Employee, len(r.s.employees))
	copy(out, r.s.employees)
	return out, nil
}

func (r *employeeRepo) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.employeeIndex(id)
	if i < 0 {
		return nil, gorm.ErrRecordNotFound
	}
	empl := r.s.employees[i]
	return &empl, nil
}

func (r *employeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.employees {
		if e.Email == email {
			empl := e
			return &empl, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *employeeRepo) Update(ctx context.Context, empl *employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.employeeIndex(empl.ID)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	if owner := r.emailOwner(empl.Email); owner != 0 && owner != empl.ID {
		return gorm.ErrDuplicatedKey
	}

	stored := &r.s.employees[i]
	stored.FullName = empl.FullName
	stored.Email = empl.Email
	stored.Department = empl.Department
	stored.UpdatedAt = r.s.now()

	*empl = *stored
	return nil
}

// Delete removes the employee and every attendance row that references it.
func (r *employeeRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.employeeIndex(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}

	kept := r.s.attendance[:0]
	for _, a := range r.s.attendance {
		if a.EmployeeID != id {
			kept = append(kept, a)
		}
	}
	clear(r.s.attendance[len(kept):])
	r.s.attendance = kept

	r.s.employees = append(r.s.employees[:i], r.s.employees[i+1:]...)
	return nil
}

// emailOwner returns the id holding email, or 0. Callers hold the lock.
func (r *employeeRepo) emailOwner(email string) uint {
	for _, e := range r.s.employees {
		if e.Email == email {
			return e.ID
		}
	}
	return 0
}
