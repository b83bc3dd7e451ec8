package salarystructure

type AllowanceRuleInput struct {
	Name    string `json:"name" binding:"required"`
	Kind    string `json:"kind" binding:"required,oneof=FIXED PERCENT_OF_BASIC PERCENT_OF_GROSS"`
	Amount  int64  `json:"amount" binding:"min=0"`
	RateBps int64  `json:"rate_bps" binding:"min=0"`
}

type CreateSalaryStructureRequest struct {
	GradeLevel        string               `json:"grade_level" binding:"required"`
	BasicSalary       int64                `json:"basic_salary" binding:"required"`
	Allowances        []AllowanceRuleInput `json:"allowances" binding:"dive"`
	PFRateBps         int64                `json:"pf_rate_bps" binding:"min=0"`
	ESIRateBps        int64                `json:"esi_rate_bps" binding:"min=0"`
	ProfessionalTax   int64                `json:"professional_tax" binding:"min=0"`
	EmployerPFRateBps int64                `json:"employer_pf_rate_bps" binding:"min=0"`
	EmployerESIBps    int64                `json:"employer_esi_rate_bps" binding:"min=0"`
	EffectiveFrom     string               `json:"effective_from" binding:"required"`
	EffectiveTo       *string              `json:"effective_to"`
}

type ApproveSalaryStructureRequest struct {
	// Supersede closes the window of the currently open active structure of
	// the same grade and retires it, instead of rejecting the overlap.
	Supersede bool `json:"supersede"`
}

type AllowanceRuleResponse struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Amount  int64  `json:"amount"`
	RateBps int64  `json:"rate_bps"`
}

type SalaryStructureResponse struct {
	ID                string                  `json:"id"`
	GradeLevel        string                  `json:"grade_level"`
	BasicSalary       int64                   `json:"basic_salary"`
	Allowances        []AllowanceRuleResponse `json:"allowances"`
	PFRateBps         int64                   `json:"pf_rate_bps"`
	ESIRateBps        int64                   `json:"esi_rate_bps"`
	ProfessionalTax   int64                   `json:"professional_tax"`
	EmployerPFRateBps int64                   `json:"employer_pf_rate_bps"`
	EmployerESIBps    int64                   `json:"employer_esi_rate_bps"`
	EffectiveFrom     string                  `json:"effective_from"`
	EffectiveTo       *string                 `json:"effective_to,omitempty"`
	Status            string                  `json:"status"`
	ApprovedBy        *string                 `json:"approved_by,omitempty"`
}
