package paysliperrors

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
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	// ErrAlreadyCommitted maps the unique (employee, period) index violation:
	// a committed payslip for the period already exists and must be reversed
	// before recomputation.
	ErrAlreadyCommitted = apperror.New(
		apperror.CodeConflict,
		"a committed payslip already exists for this employee and period",
		http.StatusConflict,
	)
	ErrNotCommitted = apperror.New(
		apperror.CodeInvalidState,
		"payslip is not in committed state",
		http.StatusConflict,
	)
)
