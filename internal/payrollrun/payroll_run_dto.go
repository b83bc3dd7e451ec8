package payrollrun

type CreatePayrollRunRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type RecomputePayslipRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type PayrollRunItemResponse struct {
	EmployeeID   string  `json:"employee_id"`
	Status       string  `json:"status"`
	PayslipID    *string `json:"payslip_id,omitempty"`
	WarningCount int     `json:"warning_count"`
	Attempts     int     `json:"attempts,omitempty"`
	ErrorCode    string  `json:"error_code,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

type PayrollRunResponse struct {
	ID          string `json:"id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Status      string `json:"status"`

	EmployeeCount int `json:"employee_count"`
	Succeeded     int `json:"succeeded"`
	Warnings      int `json:"warnings"`
	Failed        int `json:"failed"`
	Skipped       int `json:"skipped"`

	StartedAt  string  `json:"started_at"`
	FinishedAt *string `json:"finished_at,omitempty"`

	Items []PayrollRunItemResponse `json:"items,omitempty"`
}

// RunReportResponse summarizes a finished run for the payroll operator:
// which employees paid cleanly, which carried deferrals, and which failed
// with what reason.
type RunReportResponse struct {
	RunID       string `json:"run_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Status      string `json:"status"`

	Succeeded []string          `json:"succeeded"`
	Warnings  []RunReportDetail `json:"warnings"`
	Failed    []RunReportDetail `json:"failed"`
	Skipped   []string          `json:"skipped"`
}

type RunReportDetail struct {
	EmployeeID string `json:"employee_id"`
	Code       string `json:"code,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func mapToReport(run PayrollRun) RunReportResponse {
	report := RunReportResponse{
		RunID:       run.ID.String(),
		PeriodStart: run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   run.PeriodEnd.Format("2006-01-02"),
		Status:      run.Status,
		Succeeded:   []string{},
		Warnings:    []RunReportDetail{},
		Failed:      []RunReportDetail{},
		Skipped:     []string{},
	}
	for _, item := range run.Items {
		employeeID := item.EmployeeID.String()
		switch item.Status {
		case ItemStatusSucceeded:
			report.Succeeded = append(report.Succeeded, employeeID)
			if item.WarningCount > 0 {
				report.Warnings = append(report.Warnings, RunReportDetail{
					EmployeeID: employeeID,
					Reason:     "one or more deductions deferred for insufficient gross",
				})
			}
		case ItemStatusSkipped:
			report.Skipped = append(report.Skipped, employeeID)
		case ItemStatusFailed:
			report.Failed = append(report.Failed, RunReportDetail{
				EmployeeID: employeeID,
				Code:       item.ErrorCode,
				Reason:     item.ErrorMessage,
			})
		}
	}
	return report
}

func mapItemToResponse(item PayrollRunItem) PayrollRunItemResponse {
	resp := PayrollRunItemResponse{
		EmployeeID:   item.EmployeeID.String(),
		Status:       item.Status,
		WarningCount: item.WarningCount,
		Attempts:     item.Attempts,
		ErrorCode:    item.ErrorCode,
		ErrorMessage: item.ErrorMessage,
	}
	if item.PayslipID != nil {
		payslipID := item.PayslipID.String()
		resp.PayslipID = &payslipID
	}
	return resp
}

func mapToResponse(run PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:            run.ID.String(),
		PeriodStart:   run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     run.PeriodEnd.Format("2006-01-02"),
		Status:        run.Status,
		EmployeeCount: run.EmployeeCount,
		Succeeded:     run.Succeeded,
		Warnings:      run.Warnings,
		Failed:        run.Failed,
		Skipped:       run.Skipped,
		StartedAt:     run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		Items:         make([]PayrollRunItemResponse, 0, len(run.Items)),
	}
	if run.FinishedAt != nil {
		finishedAt := run.FinishedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.FinishedAt = &finishedAt
	}
	for _, item := range run.Items {
		resp.Items = append(resp.Items, mapItemToResponse(item))
	}
	return resp
}
