package payslip

import (
	"context"
	"errors"
	"time"

	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	// WithGorm binds the repository to a gorm transaction handle so payslip
	// writes commit atomically with ledger updates.
	WithGorm(tx *gorm.DB) Repository
	Create(ctx context.Context, payslip *Payslip) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error)
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Payslip, error)
	// FindCommitted returns the committed payslip for the employee and
	// period, or nil when none exists.
	FindCommitted(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*Payslip, error)
	MarkReversed(ctx context.Context, payslip *Payslip, now time.Time) error
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

func (r *repository) Create(ctx context.Context, payslip *Payslip) error {
	err := r.db.WithContext(ctx).Create(payslip).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return paysliperrors.ErrAlreadyCommitted
		}
		return err
	}
	return nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error) {
	var payslip Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Lines").
		First(&payslip, "id = ?", id).Error
	return &payslip, err
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Payslip, error) {
	var payslips []Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Preload("Lines").
		Order("period_start DESC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) FindCommitted(
	ctx context.Context,
	companyID, employeeID string,
	periodStart time.Time,
) (*Payslip, error) {
	var payslip Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.EmployeeScope(companyID, employeeID)).
		Preload("Lines").
		Where("period_start = ?", periodStart).
		Where("status = ?", StatusCommitted).
		First(&payslip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *repository) MarkReversed(ctx context.Context, payslip *Payslip, now time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("id = ? AND status = ?", payslip.ID, StatusCommitted).
		Updates(map[string]any{
			"status":      StatusReversed,
			"reversed_at": now,
			"updated_at":  now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return paysliperrors.ErrNotCommitted
	}
	payslip.Status = StatusReversed
	reversedAt := now
	payslip.ReversedAt = &reversedAt
	return nil
}
