package attendance

import (
	"time"

	"go-hrms/internal/employee"
)

const DateLayout = "2006-01-02"

type Attendance struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint      `gorm:"column:employee_id;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	Status     string    `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Only declares the foreign key for migrations; never loaded.
	Employee *employee.Employee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// ParseDate accepts an ISO 8601 calendar date and returns it at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// SameDay compares calendar dates, ignoring any time component.
func SameDay(a, b time.Time) bool {
	return a.Format(DateLayout) == b.Format(DateLayout)
}
