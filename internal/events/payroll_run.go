package events

import "time"

const PayrollRunTopic = "hr.payroll.run.v1"

const PayrollRunCompleted = "payroll_run.completed"

type PayrollRunCompletedEvent struct {
	EventType   string    `json:"event_type"`
	RunID       string    `json:"run_id"`
	CompanyID   string    `json:"company_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	Succeeded   int       `json:"succeeded"`
	Warnings    int       `json:"warnings"`
	Failed      int       `json:"failed"`
	OccurredAt  time.Time `json:"occurred_at"`
}
