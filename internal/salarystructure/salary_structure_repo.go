package salarystructure

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_repo.go -destination=mock/salary_structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, structure *SalaryStructure) error
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryStructure, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryStructure, error)
	Update(ctx context.Context, structure *SalaryStructure) error
	FindActiveByGradeCovering(ctx context.Context, companyID, gradeLevel string, asOf time.Time) ([]SalaryStructure, error)
	FindOpenActiveByGrade(ctx context.Context, companyID, gradeLevel string) (*SalaryStructure, error)
	HasOverlappingActiveWindow(ctx context.Context, companyID, gradeLevel string, from time.Time, to *time.Time, excludeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Allowances").
		Order("grade_level ASC, effective_from DESC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Allowances").
		First(&structure, "id = ?", id).Error
	return &structure, err
}

func (r *repository) Update(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Save(structure).Error
}

// FindActiveByGradeCovering returns every ACTIVE structure of the grade whose
// window covers asOf. The resolver treats more than one row as a data
// integrity violation.
func (r *repository) FindActiveByGradeCovering(
	ctx context.Context,
	companyID, gradeLevel string,
	asOf time.Time,
) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Allowances").
		Where("grade_level = ? AND status = ?", gradeLevel, StatusActive).
		Where("effective_from <= ?", asOf).
		Where("effective_to IS NULL OR effective_to > ?", asOf).
		Find(&structures).Error
	return structures, err
}

// FindOpenActiveByGrade returns the ACTIVE structure with an open-ended
// window, if any. Used when a new version supersedes the current one.
func (r *repository) FindOpenActiveByGrade(
	ctx context.Context,
	companyID, gradeLevel string,
) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("grade_level = ? AND status = ? AND effective_to IS NULL", gradeLevel, StatusActive).
		First(&structure).Error
	if err != nil {
		return nil, err
	}
	return &structure, nil
}

func (r *repository) HasOverlappingActiveWindow(
	ctx context.Context,
	companyID, gradeLevel string,
	from time.Time,
	to *time.Time,
	excludeID string,
) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&SalaryStructure{}).
		Scopes(tenant.Scope(companyID)).
		Where("grade_level = ? AND status = ?", gradeLevel, StatusActive).
		Where("effective_to IS NULL OR effective_to > ?", from)

	if to != nil {
		db = db.Where("effective_from < ?", *to)
	}

	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
