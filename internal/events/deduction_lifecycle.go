package events

import "time"

const DeductionLifecycleTopic = "hr.deduction.lifecycle.v1"

const (
	DeductionActivated = "deduction.activated"
	DeductionCompleted = "deduction.completed"
	DeductionCancelled = "deduction.cancelled"
)

// DeductionLifecycleEvent feeds external audit and notification consumers.
// WrittenOff carries the remaining loan balance recorded on cancellation.
type DeductionLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	DeductionID string    `json:"deduction_id"`
	EmployeeID  string    `json:"employee_id"`
	CompanyID   string    `json:"company_id"`
	WrittenOff  int64     `json:"written_off,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
