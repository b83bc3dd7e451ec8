package payrollrun

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

const (
	ItemStatusProcessing = "PROCESSING"
	ItemStatusSucceeded  = "SUCCEEDED"
	ItemStatusFailed     = "FAILED"
	ItemStatusSkipped    = "SKIPPED"
)

// PayrollRun is one batch execution over a company's employees for a pay
// period. The unique index on (company_id, period_start) while RUNNING
// rejects a second concurrent run for the same period.
type PayrollRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_run_company_period,unique,where:status = 'RUNNING'"`

	PeriodStart time.Time `gorm:"column:period_start;type:date;not null;index:idx_run_company_period,unique,where:status = 'RUNNING'"`
	PeriodEnd   time.Time `gorm:"column:period_end;type:date;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'RUNNING'"`

	EmployeeCount int `gorm:"column:employee_count;not null;default:0"`
	Succeeded     int `gorm:"not null;default:0"`
	Warnings      int `gorm:"not null;default:0"`
	Failed        int `gorm:"not null;default:0"`
	Skipped       int `gorm:"not null;default:0"`

	TriggeredBy uuid.UUID `gorm:"type:uuid;not null"`

	StartedAt  time.Time
	FinishedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []PayrollRunItem `gorm:"foreignKey:RunID"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// PayrollRunItem tracks one employee inside a run. It is written in
// PROCESSING state before the employee's transaction starts, so a crashed
// run leaves a visible marker instead of a silent gap.
type PayrollRunItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID      uuid.UUID `gorm:"column:run_id;type:uuid;not null;index:idx_run_item,unique"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_run_item,unique"`

	Status       string     `gorm:"type:varchar(20);not null;default:'PROCESSING'"`
	PayslipID    *uuid.UUID `gorm:"type:uuid"`
	WarningCount int        `gorm:"column:warning_count;not null;default:0"`
	Attempts     int        `gorm:"not null;default:0"`

	ErrorCode    string `gorm:"column:error_code;type:varchar(40)"`
	ErrorMessage string `gorm:"column:error_message;type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollRunItem) TableName() string {
	return "payroll_run_items"
}
