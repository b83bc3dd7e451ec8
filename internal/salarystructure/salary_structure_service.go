package salarystructure

import (
	"context"
	"database/sql"
	"errors"
	"time"

	structureerrors "go-payroll/internal/salarystructure/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string, req ApproveSalaryStructureRequest) (SalaryStructureResponse, error)
	Retire(ctx context.Context, companyID, id string) (SalaryStructureResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SalaryStructureResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryStructureResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidCompanyID
	}

	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidActorID
	}

	if req.BasicSalary <= 0 {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidBasicSalary
	}

	effectiveFrom, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	var effectiveTo *time.Time
	if req.EffectiveTo != nil && *req.EffectiveTo != "" {
		parsed, err := parseDate(*req.EffectiveTo)
		if err != nil {
			return SalaryStructureResponse{}, err
		}
		if !effectiveFrom.Before(parsed) {
			return SalaryStructureResponse{}, structureerrors.ErrInvalidDateRange
		}
		effectiveTo = &parsed
	}

	structureID := uuid.New()
	rules := make([]AllowanceRule, 0, len(req.Allowances))
	for _, input := range req.Allowances {
		if err := validateAllowanceRule(input); err != nil {
			return SalaryStructureResponse{}, err
		}
		rules = append(rules, AllowanceRule{
			ID:          uuid.New(),
			StructureID: structureID,
			Name:        input.Name,
			Kind:        input.Kind,
			Amount:      input.Amount,
			RateBps:     input.RateBps,
		})
	}

	structure := &SalaryStructure{
		ID:                structureID,
		CompanyID:         companyUUID,
		GradeLevel:        req.GradeLevel,
		BasicSalary:       req.BasicSalary,
		PFRateBps:         req.PFRateBps,
		ESIRateBps:        req.ESIRateBps,
		ProfessionalTax:   req.ProfessionalTax,
		EmployerPFRateBps: req.EmployerPFRateBps,
		EmployerESIBps:    req.EmployerESIBps,
		EffectiveFrom:     effectiveFrom,
		EffectiveTo:       effectiveTo,
		Status:            StatusDraft,
		CreatedBy:         createdByUUID,
		Allowances:        rules,
	}

	if err := s.repo.Create(ctx, structure); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*structure), nil
}

// Approve promotes DRAFT to ACTIVE. The non-overlap invariant for active
// windows of one grade is enforced here, at the state change, so the
// resolver can treat a double match as corrupted data.
func (s *service) Approve(
	ctx context.Context,
	companyID, approverID, id string,
	req ApproveSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapNotFound(err)
	}

	if structure.Status != StatusDraft {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidStatusTransition
	}

	if req.Supersede {
		previous, err := qtx.FindOpenActiveByGrade(ctx, companyID, structure.GradeLevel)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryStructureResponse{}, err
		}
		if previous != nil {
			if !previous.EffectiveFrom.Before(structure.EffectiveFrom) {
				return SalaryStructureResponse{}, structureerrors.ErrWindowOverlap
			}
			closedAt := structure.EffectiveFrom
			previous.EffectiveTo = &closedAt
			previous.Status = StatusInactive
			if err := qtx.Update(ctx, previous); err != nil {
				return SalaryStructureResponse{}, err
			}
		}
	}

	overlap, err := qtx.HasOverlappingActiveWindow(
		ctx, companyID, structure.GradeLevel,
		structure.EffectiveFrom, structure.EffectiveTo, id,
	)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	if overlap {
		return SalaryStructureResponse{}, structureerrors.ErrWindowOverlap
	}

	now := time.Now().UTC()
	structure.Status = StatusActive
	structure.ApprovedBy = &approverUUID
	structure.ApprovedAt = &now

	if err := qtx.Update(ctx, structure); err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*structure), nil
}

func (s *service) Retire(
	ctx context.Context,
	companyID, id string,
) (SalaryStructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapNotFound(err)
	}

	if structure.Status != StatusActive {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidStatusTransition
	}

	structure.Status = StatusInactive
	if structure.EffectiveTo == nil {
		now := time.Now().UTC().Truncate(24 * time.Hour)
		structure.EffectiveTo = &now
	}

	if err := qtx.Update(ctx, structure); err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*structure), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]SalaryStructureResponse, error) {
	structures, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]SalaryStructureResponse, len(structures))
	for i, structure := range structures {
		res[i] = mapToResponse(structure)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryStructureResponse, error) {
	structure, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapNotFound(err)
	}

	return mapToResponse(*structure), nil
}

func validateAllowanceRule(input AllowanceRuleInput) error {
	switch input.Kind {
	case AllowanceFixed:
		if input.Amount <= 0 {
			return structureerrors.ErrInvalidAllowanceRule
		}
	case AllowancePercentOfBasic, AllowancePercentOfGross:
		if input.RateBps <= 0 {
			return structureerrors.ErrInvalidAllowanceRule
		}
	default:
		return structureerrors.ErrInvalidAllowanceRule
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, structureerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return structureerrors.ErrStructureNotFound
	}
	return err
}

func mapToResponse(structure SalaryStructure) SalaryStructureResponse {
	allowances := make([]AllowanceRuleResponse, len(structure.Allowances))
	for i, rule := range structure.Allowances {
		allowances[i] = AllowanceRuleResponse{
			Name:    rule.Name,
			Kind:    rule.Kind,
			Amount:  rule.Amount,
			RateBps: rule.RateBps,
		}
	}

	resp := SalaryStructureResponse{
		ID:                structure.ID.String(),
		GradeLevel:        structure.GradeLevel,
		BasicSalary:       structure.BasicSalary,
		Allowances:        allowances,
		PFRateBps:         structure.PFRateBps,
		ESIRateBps:        structure.ESIRateBps,
		ProfessionalTax:   structure.ProfessionalTax,
		EmployerPFRateBps: structure.EmployerPFRateBps,
		EmployerESIBps:    structure.EmployerESIBps,
		EffectiveFrom:     structure.EffectiveFrom.Format("2006-01-02"),
		Status:            structure.Status,
	}

	if structure.EffectiveTo != nil {
		v := structure.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	if structure.ApprovedBy != nil {
		v := structure.ApprovedBy.String()
		resp.ApprovedBy = &v
	}

	return resp
}
