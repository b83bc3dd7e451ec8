package deduction

import (
	"time"

	deductionerrors "go-payroll/internal/deduction/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

const (
	TypeStatutory    = "STATUTORY"
	TypeVoluntary    = "VOLUNTARY"
	TypeDisciplinary = "DISCIPLINARY"
	TypeAdvance      = "ADVANCE"
	TypeLoan         = "LOAN"
	TypeOther        = "OTHER"
)

const (
	MethodFixed          = "FIXED"
	MethodPercentOfGross = "PERCENT_OF_GROSS"
	MethodPercentOfBasic = "PERCENT_OF_BASIC"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// PriorityRank orders deductions for application and for insufficient-gross
// deferral (lowest rank deferred first). Unknown values sort lowest.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// LoanDetails is present only for ADVANCE and LOAN deductions.
// OutstandingBalance starts at the interest-inclusive total and only ever
// decreases; it reaches exactly 0 at or before the final installment.
type LoanDetails struct {
	Principal          int64 `gorm:"column:principal;type:bigint;not null"`
	InstallmentCount   int   `gorm:"column:installment_count;not null"`
	InterestRateBps    int64 `gorm:"column:interest_rate_bps;type:bigint;not null;default:0"`
	InstallmentsPaid   int   `gorm:"column:installments_paid;not null;default:0"`
	OutstandingBalance int64 `gorm:"column:outstanding_balance;type:bigint;not null"`
	WrittenOff         int64 `gorm:"column:written_off;type:bigint;not null;default:0"`
}

// StatutoryDetails is present only for STATUTORY deductions.
type StatutoryDetails struct {
	PAN       *string `gorm:"column:pan;type:varchar(20)"`
	PFNumber  *string `gorm:"column:pf_number;type:varchar(30)"`
	ESINumber *string `gorm:"column:esi_number;type:varchar(30)"`
	UANNumber *string `gorm:"column:uan_number;type:varchar(30)"`
}

type Deduction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_deduction_employee_status"`

	Type        string `gorm:"type:varchar(20);not null"`
	Description string `gorm:"type:varchar(200);not null"`

	BaseAmount int64  `gorm:"column:base_amount;type:bigint;not null;default:0"`
	Method     string `gorm:"column:calculation_method;type:varchar(20);not null"`
	RateBps    int64  `gorm:"column:rate_bps;type:bigint;not null;default:0"`

	Priority    string `gorm:"type:varchar(10);not null;default:'MEDIUM'"`
	IsRecurring bool   `gorm:"column:is_recurring;not null;default:false"`

	EffectiveFrom time.Time  `gorm:"column:effective_from;type:date;not null"`
	EffectiveTo   *time.Time `gorm:"column:effective_to;type:date"`

	Status       string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_deduction_employee_status"`
	TimesApplied int    `gorm:"column:times_applied;not null;default:0"`

	Loan      *LoanDetails      `gorm:"embedded;embeddedPrefix:loan_"`
	Statutory *StatutoryDetails `gorm:"embedded;embeddedPrefix:statutory_"`

	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time
	CancelledBy *uuid.UUID `gorm:"type:uuid"`
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Deduction) TableName() string {
	return "deductions"
}

func (d Deduction) IsLoan() bool {
	return d.Type == TypeAdvance || d.Type == TypeLoan
}

func (d Deduction) IsTerminal() bool {
	return d.Status == StatusCompleted || d.Status == StatusCancelled
}

// Covers reports whether any day of [periodStart, periodEnd] falls inside
// the deduction's effective window.
func (d Deduction) Covers(periodStart, periodEnd time.Time) bool {
	if periodEnd.Before(d.EffectiveFrom) {
		return false
	}
	if d.EffectiveTo != nil && !periodStart.Before(*d.EffectiveTo) {
		return false
	}
	return true
}

// Approve moves PENDING to APPROVED. Requests whose effective_from already
// lies further in the past than the grace window are rejected as stale.
func (d *Deduction) Approve(approverID uuid.UUID, now time.Time, graceWindow time.Duration) error {
	if d.Status != StatusPending {
		return deductionerrors.ErrInvalidStateTransition
	}
	if now.Sub(d.EffectiveFrom) > graceWindow {
		return deductionerrors.ErrStaleApproval
	}

	d.Status = StatusApproved
	d.ApprovedBy = &approverID
	approvedAt := now
	d.ApprovedAt = &approvedAt
	return nil
}

// Activate moves APPROVED to ACTIVE. The run coordinator calls it the first
// time a payroll period's window covers the deduction.
func (d *Deduction) Activate() error {
	if d.Status != StatusApproved {
		return deductionerrors.ErrInvalidStateTransition
	}
	d.Status = StatusActive
	return nil
}

// Complete moves ACTIVE to COMPLETED.
func (d *Deduction) Complete() error {
	if d.Status != StatusActive {
		return deductionerrors.ErrInvalidStateTransition
	}
	d.Status = StatusCompleted
	return nil
}

// Cancel moves any non-terminal state to CANCELLED. For loans the remaining
// balance is written off and recorded, never silently dropped.
func (d *Deduction) Cancel(actorID uuid.UUID, now time.Time) (writtenOff int64, err error) {
	if d.IsTerminal() {
		return 0, deductionerrors.ErrInvalidStateTransition
	}

	if d.Loan != nil && d.Loan.OutstandingBalance > 0 {
		writtenOff = d.Loan.OutstandingBalance
		d.Loan.WrittenOff = writtenOff
		d.Loan.OutstandingBalance = 0
	}

	d.Status = StatusCancelled
	d.CancelledBy = &actorID
	cancelledAt := now
	d.CancelledAt = &cancelledAt
	return writtenOff, nil
}

// ShouldComplete reports whether an ACTIVE deduction is exhausted: applied
// once for non-recurring, balance at zero for loans, or window elapsed.
func (d Deduction) ShouldComplete(asOf time.Time) bool {
	if d.Status != StatusActive {
		return false
	}
	if d.IsLoan() {
		return d.Loan != nil && d.Loan.OutstandingBalance == 0
	}
	if !d.IsRecurring && d.TimesApplied >= 1 {
		return true
	}
	if d.EffectiveTo != nil && !asOf.Before(*d.EffectiveTo) {
		return true
	}
	return false
}
