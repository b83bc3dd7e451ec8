package deduction

type LoanDetailsInput struct {
	Principal        int64 `json:"principal" binding:"required,min=1"`
	InstallmentCount int   `json:"installment_count" binding:"required,min=1"`
	InterestRateBps  int64 `json:"interest_rate_bps" binding:"min=0"`
}

type StatutoryDetailsInput struct {
	PAN       *string `json:"pan"`
	PFNumber  *string `json:"pf_number"`
	ESINumber *string `json:"esi_number"`
	UANNumber *string `json:"uan_number"`
}

type CreateDeductionRequest struct {
	EmployeeID    string                 `json:"employee_id" binding:"required,uuid"`
	Type          string                 `json:"type" binding:"required,oneof=STATUTORY VOLUNTARY DISCIPLINARY ADVANCE LOAN OTHER"`
	Description   string                 `json:"description" binding:"required"`
	BaseAmount    int64                  `json:"base_amount" binding:"min=0"`
	Method        string                 `json:"calculation_method" binding:"required,oneof=FIXED PERCENT_OF_GROSS PERCENT_OF_BASIC"`
	RateBps       int64                  `json:"rate_bps" binding:"min=0"`
	Priority      string                 `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	IsRecurring   bool                   `json:"is_recurring"`
	EffectiveFrom string                 `json:"effective_from" binding:"required"`
	EffectiveTo   *string                `json:"effective_to"`
	Loan          *LoanDetailsInput      `json:"loan_details"`
	Statutory     *StatutoryDetailsInput `json:"statutory_details"`
}

type LoanDetailsResponse struct {
	Principal          int64 `json:"principal"`
	InstallmentCount   int   `json:"installment_count"`
	InterestRateBps    int64 `json:"interest_rate_bps"`
	InstallmentsPaid   int   `json:"installments_paid"`
	OutstandingBalance int64 `json:"outstanding_balance"`
	WrittenOff         int64 `json:"written_off,omitempty"`
}

type StatutoryDetailsResponse struct {
	PAN       *string `json:"pan,omitempty"`
	PFNumber  *string `json:"pf_number,omitempty"`
	ESINumber *string `json:"esi_number,omitempty"`
	UANNumber *string `json:"uan_number,omitempty"`
}

type DeductionResponse struct {
	ID            string                    `json:"id"`
	EmployeeID    string                    `json:"employee_id"`
	Type          string                    `json:"type"`
	Description   string                    `json:"description"`
	BaseAmount    int64                     `json:"base_amount"`
	Method        string                    `json:"calculation_method"`
	RateBps       int64                     `json:"rate_bps"`
	Priority      string                    `json:"priority"`
	IsRecurring   bool                      `json:"is_recurring"`
	EffectiveFrom string                    `json:"effective_from"`
	EffectiveTo   *string                   `json:"effective_to,omitempty"`
	Status        string                    `json:"status"`
	TimesApplied  int                       `json:"times_applied"`
	Loan          *LoanDetailsResponse      `json:"loan_details,omitempty"`
	Statutory     *StatutoryDetailsResponse `json:"statutory_details,omitempty"`
	ApprovedBy    *string                   `json:"approved_by,omitempty"`
	CancelledBy   *string                   `json:"cancelled_by,omitempty"`
}
