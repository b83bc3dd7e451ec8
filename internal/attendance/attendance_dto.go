package attendance

type UpsertAttendanceSummaryRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	PeriodStart   string `json:"period_start" binding:"required"`
	PeriodEnd     string `json:"period_end" binding:"required"`
	WorkingDays   int    `json:"working_days" binding:"min=0"`
	PresentDays   int    `json:"present_days" binding:"min=0"`
	AbsentDays    int    `json:"absent_days" binding:"min=0"`
	PaidLeaveDays int    `json:"paid_leave_days" binding:"min=0"`
	Source        string `json:"source" binding:"omitempty,oneof=MANUAL BIOMETRIC IMPORT"`
}

type AttendanceSummaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	WorkingDays   int    `json:"working_days"`
	PresentDays   int    `json:"present_days"`
	AbsentDays    int    `json:"absent_days"`
	PaidLeaveDays int    `json:"paid_leave_days"`
	Source        string `json:"source"`
}
