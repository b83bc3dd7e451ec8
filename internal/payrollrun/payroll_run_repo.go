package payrollrun

import (
	"context"
	"errors"

	payrollrunerrors "go-payroll/internal/payrollrun/errors"
	"go-payroll/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=payroll_run_repo.go -destination=mock/payroll_run_repo_mock.go -package=mock
type Repository interface {
	WithGorm(tx *gorm.DB) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	UpdateRun(ctx context.Context, run *PayrollRun) error
	FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error)
	FindAllRunsByCompany(ctx context.Context, companyID string) ([]PayrollRun, error)
	CreateItem(ctx context.Context, item *PayrollRunItem) error
	UpdateItem(ctx context.Context, item *PayrollRunItem) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithGorm(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	err := r.db.WithContext(ctx).Create(run).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return payrollrunerrors.ErrRunInProgress
		}
		return err
	}
	return nil
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Omit("Items").Save(run).Error
}

func (r *repository) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items").
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) FindAllRunsByCompany(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("started_at DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) CreateItem(ctx context.Context, item *PayrollRunItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) UpdateItem(ctx context.Context, item *PayrollRunItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}
