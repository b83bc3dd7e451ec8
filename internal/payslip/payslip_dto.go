package payslip

type PayslipLineResponse struct {
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	DeductionID *string `json:"deduction_id,omitempty"`
	Amount      int64   `json:"amount"`
}

type PayslipResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	RunID         *string `json:"run_id,omitempty"`
	PayslipNumber int64   `json:"payslip_number"`
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     string  `json:"period_end"`

	BasicSalary          int64 `json:"basic_salary"`
	GrossSalary          int64 `json:"gross_salary"`
	LeaveDeduction       int64 `json:"leave_deduction"`
	TotalDeductions      int64 `json:"total_deductions"`
	NetSalary            int64 `json:"net_salary"`
	TotalEmployerContrib int64 `json:"total_employer_contrib"`

	WorkingDays   int `json:"working_days"`
	PresentDays   int `json:"present_days"`
	AbsentDays    int `json:"absent_days"`
	PaidLeaveDays int `json:"paid_leave_days"`

	Status     string  `json:"status"`
	ReversedAt *string `json:"reversed_at,omitempty"`

	Lines []PayslipLineResponse `json:"lines"`
}

func MapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                   p.ID.String(),
		EmployeeID:           p.EmployeeID.String(),
		PayslipNumber:        p.PayslipNumber,
		PeriodStart:          p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:            p.PeriodEnd.Format("2006-01-02"),
		BasicSalary:          p.BasicSalary,
		GrossSalary:          p.GrossSalary,
		LeaveDeduction:       p.LeaveDeduction,
		TotalDeductions:      p.TotalDeductions,
		NetSalary:            p.NetSalary,
		TotalEmployerContrib: p.TotalEmployerContrib,
		WorkingDays:          p.WorkingDays,
		PresentDays:          p.PresentDays,
		AbsentDays:           p.AbsentDays,
		PaidLeaveDays:        p.PaidLeaveDays,
		Status:               p.Status,
		Lines:                make([]PayslipLineResponse, 0, len(p.Lines)),
	}

	if p.RunID != nil {
		runID := p.RunID.String()
		resp.RunID = &runID
	}
	if p.ReversedAt != nil {
		reversedAt := p.ReversedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ReversedAt = &reversedAt
	}

	for _, line := range p.Lines {
		mapped := PayslipLineResponse{
			Category: line.Category,
			Name:     line.Name,
			Amount:   line.Amount,
		}
		if line.DeductionID != nil {
			deductionID := line.DeductionID.String()
			mapped.DeductionID = &deductionID
		}
		resp.Lines = append(resp.Lines, mapped)
	}

	return resp
}
