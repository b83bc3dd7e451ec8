package payslip

import (
	"context"
	"errors"

	paysliperrors "go-payroll/internal/payslip/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the read side of payslips. Only the payroll run coordinator
// writes them.
//
//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]PayslipResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
	}

	slip, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	return MapToResponse(*slip), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]PayslipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, paysliperrors.ErrInvalidEmployeeID
	}

	slips, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]PayslipResponse, len(slips))
	for i, slip := range slips {
		res[i] = MapToResponse(slip)
	}
	return res, nil
}
