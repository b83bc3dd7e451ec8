package tenant

import "gorm.io/gorm"

// Scope narrows any query to one company. Every repository query that touches
// tenant-owned rows must apply it.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// EmployeeScope narrows to one employee within a company.
func EmployeeScope(companyID, employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ? AND employee_id = ?", companyID, employeeID)
	}
}
