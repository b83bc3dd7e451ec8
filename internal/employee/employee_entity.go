package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee mirrors the external directory contract: the payroll core needs
// the grade level to resolve a salary structure and little else.
type Employee struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	FullName    string         `gorm:"column:full_name;type:varchar(150);not null"`
	GradeLevel  string         `gorm:"column:grade_level;type:varchar(30);not null;index"`
	Department  string         `gorm:"column:department;type:varchar(100)"`
	JoiningDate time.Time      `gorm:"column:joining_date;type:date;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
