package structureerrors

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
		"effective_from must be before effective_to",
		http.StatusBadRequest,
	)
	ErrInvalidBasicSalary = apperror.New(
		apperror.CodeInvalidInput,
		"basic_salary must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidAllowanceRule = apperror.New(
		apperror.CodeInvalidInput,
		"allowance rule is invalid: fixed rules need an amount, percentage rules need a rate",
		http.StatusBadRequest,
	)
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary structure not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid salary structure status transition",
		http.StatusConflict,
	)
	ErrWindowOverlap = apperror.New(
		apperror.CodeConflict,
		"an active salary structure already covers part of this window for the grade",
		http.StatusConflict,
	)
	ErrNoApplicableStructure = apperror.New(
		apperror.CodeNoApplicableStructure,
		"no active salary structure covers this date for the grade",
		http.StatusUnprocessableEntity,
	)
	// ErrAmbiguousStructure means the non-overlap invariant was violated in
	// the data. Fatal, never retried.
	ErrAmbiguousStructure = apperror.New(
		apperror.CodeDataIntegrity,
		"multiple active salary structures cover this date for the grade",
		http.StatusInternalServerError,
	)
)
