package deduction_test

import (
	"testing"
	"time"

	"go-payroll/internal/deduction"
	deductionerrors "go-payroll/internal/deduction/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newLoan(principal int64, installments int, interestBps int64) *deduction.Deduction {
	return &deduction.Deduction{
		ID:            uuid.New(),
		Type:          deduction.TypeLoan,
		Description:   "test loan",
		IsRecurring:   true,
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        deduction.StatusActive,
		Loan: &deduction.LoanDetails{
			Principal:          principal,
			InstallmentCount:   installments,
			InterestRateBps:    interestBps,
			OutstandingBalance: deduction.TotalPayable(principal, interestBps),
		},
	}
}

func TestAmortizer_ZeroInterestSchedule(t *testing.T) {
	loan := newLoan(12000, 12, 0)

	assert.Equal(t, int64(12000), deduction.TotalPayable(12000, 0))
	assert.Equal(t, int64(1000), deduction.PerInstallment(12000, 12, 0))

	for i := 0; i < 12; i++ {
		quote := deduction.InstallmentQuote(loan)
		assert.Equal(t, int64(1000), quote)
		assert.NoError(t, loan.ApplyInstallment(quote))
	}

	assert.Zero(t, loan.Loan.OutstandingBalance)
	assert.Equal(t, 12, loan.Loan.InstallmentsPaid)
	assert.Equal(t, deduction.StatusCompleted, loan.Status)

	// An exhausted loan quotes nothing.
	assert.Zero(t, deduction.InstallmentQuote(loan))
}

func TestAmortizer_FinalInstallmentClamped(t *testing.T) {
	// 1000 over 3 installments: 334 + 334 + 332.
	loan := newLoan(1000, 3, 0)

	var charged int64
	for deduction.InstallmentQuote(loan) > 0 {
		quote := deduction.InstallmentQuote(loan)
		charged += quote
		assert.NoError(t, loan.ApplyInstallment(quote))
	}

	assert.Equal(t, int64(1000), charged)
	assert.Equal(t, 3, loan.Loan.InstallmentsPaid)
	assert.Zero(t, loan.Loan.OutstandingBalance)
}

func TestAmortizer_InterestInclusiveTotal(t *testing.T) {
	// 10% interest: total payable 11000, 11 installments of 1000.
	loan := newLoan(10000, 11, 1000)

	assert.Equal(t, int64(11000), loan.Loan.OutstandingBalance)
	assert.Equal(t, int64(1000), deduction.InstallmentQuote(loan))
}

func TestAmortizer_ScheduleNeverOvershoots(t *testing.T) {
	cases := []struct {
		principal    int64
		installments int
		interestBps  int64
	}{
		{7, 3, 0},
		{9999, 7, 0},
		{10000, 12, 550},
		{1, 5, 0},
	}

	for _, tc := range cases {
		loan := newLoan(tc.principal, tc.installments, tc.interestBps)
		total := deduction.TotalPayable(tc.principal, tc.interestBps)

		var charged int64
		steps := 0
		for deduction.InstallmentQuote(loan) > 0 {
			quote := deduction.InstallmentQuote(loan)
			charged += quote
			assert.NoError(t, loan.ApplyInstallment(quote))
			steps++
		}

		assert.Equal(t, total, charged)
		assert.LessOrEqual(t, steps, tc.installments)
		assert.Zero(t, loan.Loan.OutstandingBalance)
	}
}

func TestAmortizer_ReverseInstallmentReopensLoan(t *testing.T) {
	loan := newLoan(2000, 2, 0)

	assert.NoError(t, loan.ApplyInstallment(1000))
	assert.NoError(t, loan.ApplyInstallment(1000))
	assert.Equal(t, deduction.StatusCompleted, loan.Status)

	assert.NoError(t, loan.ReverseInstallment(1000))

	assert.Equal(t, deduction.StatusActive, loan.Status)
	assert.Equal(t, 1, loan.Loan.InstallmentsPaid)
	assert.Equal(t, int64(1000), loan.Loan.OutstandingBalance)
	assert.Equal(t, int64(1000), deduction.InstallmentQuote(loan))
}

func TestAmortizer_ReverseWithoutApplicationFails(t *testing.T) {
	loan := newLoan(2000, 2, 0)

	err := loan.ReverseInstallment(1000)
	assert.ErrorIs(t, err, deductionerrors.ErrInvalidStateTransition)
}

func TestAmortizer_ApplyRejectsOvercharge(t *testing.T) {
	loan := newLoan(1000, 2, 0)

	err := loan.ApplyInstallment(5000)
	assert.ErrorIs(t, err, deductionerrors.ErrInvalidConfiguration)
	assert.Zero(t, loan.Loan.InstallmentsPaid)
}
