package employee

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	errInvalidCompanyID  = apperror.New(apperror.CodeInvalidInput, "invalid company id", http.StatusBadRequest)
	errInvalidDateFormat = apperror.New(apperror.CodeInvalidInput, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
	errEmployeeNotFound  = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	ListForRun(ctx context.Context, companyID string) ([]Employee, error)
}

type service struct {
	repo  Repository
	group singleflight.Group
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, errInvalidCompanyID
	}

	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		return EmployeeResponse{}, errInvalidDateFormat
	}

	emp := &Employee{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		FullName:    req.FullName,
		GradeLevel:  req.GradeLevel,
		Department:  req.Department,
		JoiningDate: joiningDate,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	employees, err := s.ListForRun(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		res[i] = mapToResponse(emp)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, errEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

// ListForRun returns the directory snapshot a payroll run iterates over.
// Concurrent callers for the same company share one query.
func (s *service) ListForRun(ctx context.Context, companyID string) ([]Employee, error) {
	v, err, _ := s.group.Do("employees:"+companyID, func() (interface{}, error) {
		return s.repo.FindAllByCompany(ctx, companyID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Employee), nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          emp.ID.String(),
		FullName:    emp.FullName,
		GradeLevel:  emp.GradeLevel,
		Department:  emp.Department,
		JoiningDate: emp.JoiningDate.Format("2006-01-02"),
	}
}
