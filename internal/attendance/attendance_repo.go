package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, summary *AttendanceSummary) error
	FindAllByCompany(ctx context.Context, companyID string, periodStart *time.Time) ([]AttendanceSummary, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*AttendanceSummary, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Upsert(ctx context.Context, summary *AttendanceSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "period_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"period_end", "working_days", "present_days",
				"absent_days", "paid_leave_days", "source", "updated_at",
			}),
		}).
		Create(summary).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, periodStart *time.Time) ([]AttendanceSummary, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("period_start DESC")

	if periodStart != nil {
		db = db.Where("period_start = ?", *periodStart)
	}

	var summaries []AttendanceSummary
	err := db.Find(&summaries).Error
	return summaries, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*AttendanceSummary, error) {
	var summary AttendanceSummary
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		First(&summary, "period_start = ?", periodStart).Error
	return &summary, err
}
