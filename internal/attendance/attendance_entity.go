package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceSummary is the per-period aggregate pushed by the external
// biometric/attendance service. The payroll core never derives it from raw
// clock events; it consumes the aggregate as-is.
type AttendanceSummary struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID    uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_attendance_employee_period,unique"`
	PeriodStart   time.Time `gorm:"column:period_start;type:date;not null;index:idx_attendance_employee_period,unique"`
	PeriodEnd     time.Time `gorm:"column:period_end;type:date;not null"`
	WorkingDays   int       `gorm:"column:working_days;not null"`
	PresentDays   int       `gorm:"column:present_days;not null"`
	AbsentDays    int       `gorm:"column:absent_days;not null"`
	PaidLeaveDays int       `gorm:"column:paid_leave_days;not null"`
	Source        string    `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (AttendanceSummary) TableName() string {
	return "attendance_summaries"
}

// UnpaidAbsenceDays is the day count charged against gross pay.
func (s AttendanceSummary) UnpaidAbsenceDays() int {
	unpaid := s.AbsentDays - s.PaidLeaveDays
	if unpaid < 0 {
		return 0
	}
	return unpaid
}
