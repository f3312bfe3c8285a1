package employee

import "time"

const DefaultDepartment = "IT"

type Employee struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	FullName   string `gorm:"column:full_name;type:varchar(150);not null"`
	Email      string `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Department string `gorm:"column:department;type:varchar(100);not null;default:IT"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Employee) TableName() string {
	return "employees"
}
