package deductionerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"effective_from must be before effective_to",
		http.StatusBadRequest,
	)
	// ErrInvalidConfiguration rejects malformed deductions at write time so
	// the calculator never sees them (percentage method without a rate, loan
	// without installments, and the like).
	ErrInvalidConfiguration = apperror.New(
		apperror.CodeInvalidInput,
		"invalid deduction configuration",
		http.StatusBadRequest,
	)
	ErrStaleApproval = apperror.New(
		apperror.CodeInvalidState,
		"deduction effective date is too far in the past to approve",
		http.StatusConflict,
	)
	ErrInvalidStateTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid deduction state transition",
		http.StatusConflict,
	)
	ErrDeductionNotFound = apperror.New(
		apperror.CodeNotFound,
		"deduction not found",
		http.StatusNotFound,
	)
	// ErrConcurrentModification signals a lost row-lock race. Callers retry
	// with backoff; it is never silently skipped.
	ErrConcurrentModification = apperror.New(
		apperror.CodeConcurrentModification,
		"deduction is being modified by another payroll run",
		http.StatusConflict,
	)
)
