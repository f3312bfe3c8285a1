package attendance

type CreateAttendanceRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required,notblank"`
	Status     string `json:"status" binding:"required,notblank"`
}

type UpdateAttendanceRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required,notblank"`
	Status     string `json:"status" binding:"required,notblank"`
}

type AttendanceResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}
