package deduction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	deductionerrors "go-payroll/internal/deduction/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=deduction_service.go -destination=mock/deduction_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateDeductionRequest) (DeductionResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (DeductionResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (DeductionResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DeductionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DeductionResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]DeductionResponse, error)
}

type service struct {
	db          *gorm.DB
	repo        Repository
	outboxRepo  kafka.OutboxRepository
	graceWindow time.Duration
}

func NewService(db *gorm.DB, repo Repository, outboxRepo kafka.OutboxRepository, graceWindowDays int) Service {
	return &service{
		db:          db,
		repo:        repo,
		outboxRepo:  outboxRepo,
		graceWindow: time.Duration(graceWindowDays) * 24 * time.Hour,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateDeductionRequest,
) (DeductionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidCompanyID
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidActorID
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidEmployeeID
	}

	effectiveFrom, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return DeductionResponse{}, err
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != nil && *req.EffectiveTo != "" {
		parsed, err := parseDate(*req.EffectiveTo)
		if err != nil {
			return DeductionResponse{}, err
		}
		if !effectiveFrom.Before(parsed) {
			return DeductionResponse{}, deductionerrors.ErrInvalidDateRange
		}
		effectiveTo = &parsed
	}

	if err := validateConfiguration(req); err != nil {
		return DeductionResponse{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	deduction := &Deduction{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		Type:          req.Type,
		Description:   req.Description,
		BaseAmount:    req.BaseAmount,
		Method:        req.Method,
		RateBps:       req.RateBps,
		Priority:      priority,
		IsRecurring:   req.IsRecurring,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		Status:        StatusPending,
		CreatedBy:     actorUUID,
	}

	if deduction.IsLoan() {
		deduction.Loan = &LoanDetails{
			Principal:          req.Loan.Principal,
			InstallmentCount:   req.Loan.InstallmentCount,
			InterestRateBps:    req.Loan.InterestRateBps,
			OutstandingBalance: TotalPayable(req.Loan.Principal, req.Loan.InterestRateBps),
		}
		// A loan is inherently recurring until paid off.
		deduction.IsRecurring = true
	}

	if deduction.Type == TypeStatutory && req.Statutory != nil {
		deduction.Statutory = &StatutoryDetails{
			PAN:       req.Statutory.PAN,
			PFNumber:  req.Statutory.PFNumber,
			ESINumber: req.Statutory.ESINumber,
			UANNumber: req.Statutory.UANNumber,
		}
	}

	if err := s.repo.Create(ctx, deduction); err != nil {
		return DeductionResponse{}, err
	}

	return mapToResponse(*deduction), nil
}

func (s *service) Approve(
	ctx context.Context,
	companyID, approverID, id string,
) (DeductionResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidActorID
	}

	var deduction *Deduction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithGorm(tx)

		d, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return mapNotFound(err)
		}

		if err := d.Approve(approverUUID, time.Now().UTC(), s.graceWindow); err != nil {
			return err
		}

		if err := qtx.Update(ctx, d); err != nil {
			return err
		}

		deduction = d
		return nil
	})
	if err != nil {
		return DeductionResponse{}, err
	}

	return mapToResponse(*deduction), nil
}

func (s *service) Cancel(
	ctx context.Context,
	companyID, actorID, id string,
) (DeductionResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidActorID
	}

	// The state write and the cancellation event must commit together: a
	// cancelled loan with no deduction.cancelled event (or the reverse)
	// desynchronizes downstream consumers from the ledger.
	var deduction *Deduction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithGorm(tx)

		d, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return mapNotFound(err)
		}

		writtenOff, err := d.Cancel(actorUUID, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := qtx.Update(ctx, d); err != nil {
			return err
		}

		event, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"deduction",
			d.ID.String(),
			events.DeductionCancelled,
			events.DeductionLifecycleTopic,
			events.DeductionLifecycleEvent{
				EventType:   events.DeductionCancelled,
				DeductionID: d.ID.String(),
				EmployeeID:  d.EmployeeID.String(),
				CompanyID:   d.CompanyID.String(),
				WrittenOff:  writtenOff,
				OccurredAt:  time.Now().UTC(),
			},
		)
		if err != nil {
			return err
		}

		sqlTx, ok := tx.Statement.ConnPool.(*sql.Tx)
		if !ok {
			return errors.New("cancellation events require a transactional connection")
		}
		if err := s.outboxRepo.WithTx(sqlTx).Create(ctx, event); err != nil {
			return err
		}

		deduction = d
		return nil
	})
	if err != nil {
		return DeductionResponse{}, err
	}

	return mapToResponse(*deduction), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]DeductionResponse, error) {
	deductions, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(deductions), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DeductionResponse, error) {
	deduction, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DeductionResponse{}, mapNotFound(err)
	}
	return mapToResponse(*deduction), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]DeductionResponse, error) {
	deductions, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(deductions), nil
}

// validateConfiguration rejects malformed deductions at creation so the
// calculator can assume every active deduction is well-formed.
func validateConfiguration(req CreateDeductionRequest) error {
	isLoan := req.Type == TypeAdvance || req.Type == TypeLoan

	// Loan charges come from the amortization schedule, not the method.
	if !isLoan {
		switch req.Method {
		case MethodFixed:
			if req.BaseAmount <= 0 {
				return deductionerrors.ErrInvalidConfiguration
			}
		case MethodPercentOfGross, MethodPercentOfBasic:
			if req.RateBps <= 0 {
				return deductionerrors.ErrInvalidConfiguration
			}
		}
	}
	if isLoan && req.Loan == nil {
		return deductionerrors.ErrInvalidConfiguration
	}
	if !isLoan && req.Loan != nil {
		return deductionerrors.ErrInvalidConfiguration
	}
	if req.Type != TypeStatutory && req.Statutory != nil {
		return deductionerrors.ErrInvalidConfiguration
	}

	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, deductionerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return deductionerrors.ErrDeductionNotFound
	}
	return err
}

func mapToResponse(deduction Deduction) DeductionResponse {
	resp := DeductionResponse{
		ID:            deduction.ID.String(),
		EmployeeID:    deduction.EmployeeID.String(),
		Type:          deduction.Type,
		Description:   deduction.Description,
		BaseAmount:    deduction.BaseAmount,
		Method:        deduction.Method,
		RateBps:       deduction.RateBps,
		Priority:      deduction.Priority,
		IsRecurring:   deduction.IsRecurring,
		EffectiveFrom: deduction.EffectiveFrom.Format("2006-01-02"),
		Status:        deduction.Status,
		TimesApplied:  deduction.TimesApplied,
	}

	if deduction.EffectiveTo != nil {
		v := deduction.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	if deduction.Loan != nil {
		resp.Loan = &LoanDetailsResponse{
			Principal:          deduction.Loan.Principal,
			InstallmentCount:   deduction.Loan.InstallmentCount,
			InterestRateBps:    deduction.Loan.InterestRateBps,
			InstallmentsPaid:   deduction.Loan.InstallmentsPaid,
			OutstandingBalance: deduction.Loan.OutstandingBalance,
			WrittenOff:         deduction.Loan.WrittenOff,
		}
	}
	if deduction.Statutory != nil {
		resp.Statutory = &StatutoryDetailsResponse{
			PAN:       deduction.Statutory.PAN,
			PFNumber:  deduction.Statutory.PFNumber,
			ESINumber: deduction.Statutory.ESINumber,
			UANNumber: deduction.Statutory.UANNumber,
		}
	}
	if deduction.ApprovedBy != nil {
		v := deduction.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if deduction.CancelledBy != nil {
		v := deduction.CancelledBy.String()
		resp.CancelledBy = &v
	}

	return resp
}

func mapToListResponse(deductions []Deduction) []DeductionResponse {
	res := make([]DeductionResponse, len(deductions))
	for i, deduction := range deductions {
		res[i] = mapToResponse(deduction)
	}
	return res
}
