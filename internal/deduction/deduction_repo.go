package deduction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	deductionerrors "go-payroll/internal/deduction/errors"
	"go-payroll/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgLockNotAvailable is raised by SELECT ... FOR UPDATE NOWAIT when another
// transaction holds the row lock.
const pgLockNotAvailable = "55P03"

//go:generate mockgen -source=deduction_repo.go -destination=mock/deduction_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// WithGorm binds the repository to a gorm transaction handle. The run
	// coordinator uses it so ledger locks and payslip writes share one
	// transaction.
	WithGorm(tx *gorm.DB) Repository
	Create(ctx context.Context, deduction *Deduction) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Deduction, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Deduction, error)
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Deduction, error)
	Update(ctx context.Context, deduction *Deduction) error
	// FindChargeableForUpdate locks and returns the employee's APPROVED and
	// ACTIVE deductions whose windows touch the period. Must run inside a
	// transaction; a lost lock race maps to ErrConcurrentModification.
	FindChargeableForUpdate(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]Deduction, error)
	// FindByIDsForUpdate locks specific deductions regardless of status; the
	// compensating recompute needs COMPLETED loans too.
	FindByIDsForUpdate(ctx context.Context, companyID string, ids []string) ([]Deduction, error)
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

func (r *repository) WithGorm(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, deduction *Deduction) error {
	return r.db.WithContext(ctx).Create(deduction).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Deduction, error) {
	var deductions []Deduction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&deductions).Error
	return deductions, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Deduction, error) {
	var deduction Deduction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&deduction, "id = ?", id).Error
	return &deduction, err
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Deduction, error) {
	var deductions []Deduction
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Order("effective_from ASC").
		Find(&deductions).Error
	return deductions, err
}

func (r *repository) Update(ctx context.Context, deduction *Deduction) error {
	return r.db.WithContext(ctx).Save(deduction).Error
}

func (r *repository) FindChargeableForUpdate(
	ctx context.Context,
	companyID, employeeID string,
	periodStart, periodEnd time.Time,
) ([]Deduction, error) {
	var deductions []Deduction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Where("status IN ?", []string{StatusApproved, StatusActive}).
		Where("effective_from <= ?", periodEnd).
		Where("effective_to IS NULL OR effective_to > ?", periodStart).
		Order("effective_from ASC, id ASC").
		Find(&deductions).Error
	if err != nil {
		return nil, mapLockError(err)
	}
	return deductions, nil
}

func (r *repository) FindByIDsForUpdate(
	ctx context.Context,
	companyID string,
	ids []string,
) ([]Deduction, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var deductions []Deduction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"}).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&deductions).Error
	if err != nil {
		return nil, mapLockError(err)
	}
	return deductions, nil
}

func mapLockError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return deductionerrors.ErrConcurrentModification
	}
	return err
}
