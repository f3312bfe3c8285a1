package employee

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required,notblank"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department"`
}

type UpdateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required,notblank"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department"`
}

type EmployeeResponse struct {
	ID         uint   `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
