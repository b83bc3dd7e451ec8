package events

import "time"

// AttendanceSummaryTopic is produced by the external biometric/attendance
// service; the payroll core only consumes it.
const AttendanceSummaryTopic = "hr.attendance.summary.v1"

type AttendanceSummaryEvent struct {
	EventType     string    `json:"event_type"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	PeriodStart   string    `json:"period_start"`
	PeriodEnd     string    `json:"period_end"`
	WorkingDays   int       `json:"working_days"`
	PresentDays   int       `json:"present_days"`
	AbsentDays    int       `json:"absent_days"`
	PaidLeaveDays int       `json:"paid_leave_days"`
	OccurredAt    time.Time `json:"occurred_at"`
}
