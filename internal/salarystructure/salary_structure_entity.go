package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "DRAFT"
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

const (
	AllowanceFixed          = "FIXED"
	AllowancePercentOfBasic = "PERCENT_OF_BASIC"
	AllowancePercentOfGross = "PERCENT_OF_GROSS"
)

// SalaryStructure is a versioned compensation template for one grade level.
// Money is stored in minor units, rates in basis points (1% = 100 bps).
// Active structures of one grade must have disjoint effective windows; the
// approval flow enforces it with an overlap query.
type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_structure_grade"`
	GradeLevel string    `gorm:"column:grade_level;type:varchar(30);not null;index:idx_structure_grade"`

	BasicSalary int64 `gorm:"column:basic_salary;type:bigint;not null"`

	// Statutory knobs. Rates are configuration, not law: the structure is
	// the single source for both employee and employer sides.
	PFRateBps         int64 `gorm:"column:pf_rate_bps;type:bigint;not null;default:0"`
	ESIRateBps        int64 `gorm:"column:esi_rate_bps;type:bigint;not null;default:0"`
	ProfessionalTax   int64 `gorm:"column:professional_tax;type:bigint;not null;default:0"`
	EmployerPFRateBps int64 `gorm:"column:employer_pf_rate_bps;type:bigint;not null;default:0"`
	EmployerESIBps    int64 `gorm:"column:employer_esi_rate_bps;type:bigint;not null;default:0"`

	EffectiveFrom time.Time  `gorm:"column:effective_from;type:date;not null"`
	EffectiveTo   *time.Time `gorm:"column:effective_to;type:date"`

	Status     string     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Allowances []AllowanceRule `gorm:"foreignKey:StructureID"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

// Covers reports whether asOf falls inside [effective_from, effective_to).
func (s SalaryStructure) Covers(asOf time.Time) bool {
	if asOf.Before(s.EffectiveFrom) {
		return false
	}
	if s.EffectiveTo != nil && !asOf.Before(*s.EffectiveTo) {
		return false
	}
	return true
}

// AllowanceRule is a closed variant: FIXED uses Amount,
// PERCENT_OF_BASIC / PERCENT_OF_GROSS use RateBps.
type AllowanceRule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StructureID uuid.UUID `gorm:"column:structure_id;type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(60);not null"`
	Kind        string    `gorm:"type:varchar(20);not null"`
	Amount      int64     `gorm:"type:bigint;not null;default:0"`
	RateBps     int64     `gorm:"column:rate_bps;type:bigint;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AllowanceRule) TableName() string {
	return "allowance_rules"
}
