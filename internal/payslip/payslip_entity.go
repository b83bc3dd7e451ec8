package payslip

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusCommitted = "COMMITTED"
	StatusReversed  = "REVERSED"
)

// Payslip line categories.
const (
	CategoryAllowance            = "ALLOWANCE"
	CategoryStatutory            = "STATUTORY"
	CategoryVoluntary            = "VOLUNTARY"
	CategoryDisciplinary         = "DISCIPLINARY"
	CategoryOther                = "OTHER"
	CategoryLoanInstallment      = "LOAN_INSTALLMENT"
	CategoryEmployerContribution = "EMPLOYER_CONTRIBUTION"
	// CategoryDeferred records the portion of a deduction that gross pay
	// could not cover this period. Bookkeeping only, not charged.
	CategoryDeferred = "DEFERRED"
)

// Payslip is immutable once committed for a period; the unique
// (employee_id, period_start) index is the at-most-once anchor. A
// compensating recompute marks it REVERSED and writes a fresh one.
type Payslip struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_payslip_employee_period,unique,where:status = 'COMMITTED'"`
	RunID         *uuid.UUID `gorm:"type:uuid;index"`
	PayslipNumber int64      `gorm:"column:payslip_number;type:bigint;not null"`

	PeriodStart time.Time `gorm:"column:period_start;type:date;not null;index:idx_payslip_employee_period,unique,where:status = 'COMMITTED'"`
	PeriodEnd   time.Time `gorm:"column:period_end;type:date;not null"`

	BasicSalary          int64 `gorm:"column:basic_salary;type:bigint;not null"`
	GrossSalary          int64 `gorm:"column:gross_salary;type:bigint;not null"`
	LeaveDeduction       int64 `gorm:"column:leave_deduction;type:bigint;not null;default:0"`
	TotalDeductions      int64 `gorm:"column:total_deductions;type:bigint;not null;default:0"`
	NetSalary            int64 `gorm:"column:net_salary;type:bigint;not null"`
	TotalEmployerContrib int64 `gorm:"column:total_employer_contrib;type:bigint;not null;default:0"`

	WorkingDays   int `gorm:"column:working_days;not null;default:0"`
	PresentDays   int `gorm:"column:present_days;not null;default:0"`
	AbsentDays    int `gorm:"column:absent_days;not null;default:0"`
	PaidLeaveDays int `gorm:"column:paid_leave_days;not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'COMMITTED'"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReversedAt *time.Time

	Lines []PayslipLine `gorm:"foreignKey:PayslipID"`
}

func (Payslip) TableName() string {
	return "payslips"
}

type PayslipLine struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayslipID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Category    string     `gorm:"type:varchar(30);not null;index"`
	Name        string     `gorm:"type:varchar(120);not null"`
	DeductionID *uuid.UUID `gorm:"type:uuid;index"`
	Amount      int64      `gorm:"type:bigint;not null"`
	CreatedAt   time.Time
}

func (PayslipLine) TableName() string {
	return "payslip_lines"
}
