package payrollrunerrors

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
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	// ErrRunInProgress maps the unique RUNNING index violation: one run per
	// company and period at a time.
	ErrRunInProgress = apperror.New(
		apperror.CodeConflict,
		"a payroll run for this period is already in progress",
		http.StatusConflict,
	)
	ErrNothingToRecompute = apperror.New(
		apperror.CodeInvalidState,
		"no committed payslip exists for this employee and period",
		http.StatusConflict,
	)
)
