package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
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
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrInvalidDayCounts = apperror.New(
		apperror.CodeInvalidInput,
		"present, absent and paid leave days must fit within working days",
		http.StatusBadRequest,
	)
	ErrSummaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance summary not found",
		http.StatusNotFound,
	)
)
