package deduction

import (
	deductionerrors "go-payroll/internal/deduction/errors"
)

// bpsScale: rates are basis points, 10000 bps = 100%.
const bpsScale = 10000

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// TotalPayable is the interest-inclusive amount a loan must amortize,
// rounded up to the minor unit. OutstandingBalance starts here.
func TotalPayable(principal, interestRateBps int64) int64 {
	return ceilDiv(principal*(bpsScale+interestRateBps), bpsScale)
}

// PerInstallment is the equal installment amount: total payable spread over
// the installment count, rounded up so the schedule never undershoots.
func PerInstallment(principal int64, installmentCount int, interestRateBps int64) int64 {
	if installmentCount <= 0 {
		return 0
	}
	return ceilDiv(principal*(bpsScale+interestRateBps), bpsScale*int64(installmentCount))
}

// InstallmentQuote returns the charge this period would take from the loan,
// without mutating anything. The final installment is clamped to the
// remaining balance so the loan pays off exactly, with no residual rounding
// debt. Completed or exhausted loans quote 0.
func InstallmentQuote(d *Deduction) int64 {
	if d == nil || d.Loan == nil {
		return 0
	}
	if d.Status == StatusCompleted || d.Status == StatusCancelled {
		return 0
	}

	l := d.Loan
	if l.InstallmentsPaid >= l.InstallmentCount || l.OutstandingBalance <= 0 {
		return 0
	}

	charge := PerInstallment(l.Principal, l.InstallmentCount, l.InterestRateBps)
	if charge > l.OutstandingBalance {
		charge = l.OutstandingBalance
	}
	return charge
}

// ApplyInstallment consumes one installment of charge from the loan and
// completes the deduction when the balance hits zero. Applying to an already
// completed deduction is an idempotent no-op when the charge is zero.
func (d *Deduction) ApplyInstallment(charge int64) error {
	if charge == 0 {
		return nil
	}
	if d.Loan == nil || d.Status != StatusActive {
		return deductionerrors.ErrInvalidStateTransition
	}
	if charge < 0 || charge > d.Loan.OutstandingBalance {
		return deductionerrors.ErrInvalidConfiguration
	}

	d.Loan.InstallmentsPaid++
	d.Loan.OutstandingBalance -= charge
	d.TimesApplied++

	if d.Loan.OutstandingBalance == 0 {
		return d.Complete()
	}
	return nil
}

// ReverseInstallment undoes one applied installment during a compensating
// recompute. A loan completed by that installment reopens.
func (d *Deduction) ReverseInstallment(charge int64) error {
	if charge == 0 {
		return nil
	}
	if d.Loan == nil || charge < 0 {
		return deductionerrors.ErrInvalidConfiguration
	}
	if d.Status != StatusActive && d.Status != StatusCompleted {
		return deductionerrors.ErrInvalidStateTransition
	}
	if d.Loan.InstallmentsPaid <= 0 {
		return deductionerrors.ErrInvalidStateTransition
	}

	if d.Status == StatusCompleted {
		d.Status = StatusActive
	}
	d.Loan.InstallmentsPaid--
	d.Loan.OutstandingBalance += charge
	if d.TimesApplied > 0 {
		d.TimesApplied--
	}
	return nil
}
