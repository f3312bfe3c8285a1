package events

import "time"

const AttendanceRecordedTopic = "hrms.attendance.recorded.v1"

const (
	AttendanceCreated = "attendance_created"
	AttendanceUpdated = "attendance_updated"
	AttendanceDeleted = "attendance_deleted"
)

type AttendanceRecordedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID uint      `json:"attendance_id"`
	EmployeeID   uint      `json:"employee_id,omitempty"`
	Date         string    `json:"date,omitempty"`
	Status       string    `json:"status,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
