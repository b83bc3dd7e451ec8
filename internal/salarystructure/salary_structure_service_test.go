package salarystructure_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/salarystructure"
	structureerrors "go-payroll/internal/salarystructure/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type structureServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service salarystructure.Service
	repo    *fakeStructureRepository
}

func setupStructureServiceTest(t *testing.T) *structureServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeStructureRepository{}
	svc := salarystructure.NewService(db, repo)

	return &structureServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestStructureService_CreateDraft(t *testing.T) {
	ctx := context.Background()
	deps := setupStructureServiceTest(t)
	defer deps.db.Close()

	var created *salarystructure.SalaryStructure
	deps.repo.createFn = func(ctx context.Context, structure *salarystructure.SalaryStructure) error {
		created = structure
		return nil
	}

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), salarystructure.CreateSalaryStructureRequest{
		GradeLevel:  "L3",
		BasicSalary: 30000,
		PFRateBps:   1200,
		Allowances: []salarystructure.AllowanceRuleInput{
			{Name: "HRA", Kind: salarystructure.AllowanceFixed, Amount: 5000},
		},
		EffectiveFrom: "2026-04-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, salarystructure.StatusDraft, resp.Status)
	assert.Len(t, created.Allowances, 1)
	assert.Equal(t, created.ID, created.Allowances[0].StructureID)
}

func TestStructureService_CreateRejectsBadAllowanceRule(t *testing.T) {
	deps := setupStructureServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Create(context.Background(), uuid.New().String(), uuid.New().String(), salarystructure.CreateSalaryStructureRequest{
		GradeLevel:  "L3",
		BasicSalary: 30000,
		Allowances: []salarystructure.AllowanceRuleInput{
			{Name: "HRA", Kind: salarystructure.AllowancePercentOfBasic, RateBps: 0},
		},
		EffectiveFrom: "2026-04-01",
	})

	assert.ErrorIs(t, err, structureerrors.ErrInvalidAllowanceRule)
}

func TestStructureService_ApproveActivates(t *testing.T) {
	ctx := context.Background()
	deps := setupStructureServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	draft := &salarystructure.SalaryStructure{
		ID:            uuid.New(),
		GradeLevel:    "L3",
		BasicSalary:   30000,
		EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:        salarystructure.StatusDraft,
	}
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*salarystructure.SalaryStructure, error) {
		return draft, nil
	}

	resp, err := deps.service.Approve(ctx, uuid.New().String(), uuid.New().String(), draft.ID.String(), salarystructure.ApproveSalaryStructureRequest{})

	assert.NoError(t, err)
	assert.Equal(t, salarystructure.StatusActive, resp.Status)
	assert.NotNil(t, resp.ApprovedBy)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestStructureService_ApproveRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	deps := setupStructureServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	draft := &salarystructure.SalaryStructure{
		ID:            uuid.New(),
		GradeLevel:    "L3",
		EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:        salarystructure.StatusDraft,
	}
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*salarystructure.SalaryStructure, error) {
		return draft, nil
	}
	deps.repo.hasOverlappingActiveWindowFn = func(ctx context.Context, companyID, gradeLevel string, from time.Time, to *time.Time, excludeID string) (bool, error) {
		return true, nil
	}

	_, err := deps.service.Approve(ctx, uuid.New().String(), uuid.New().String(), draft.ID.String(), salarystructure.ApproveSalaryStructureRequest{})

	assert.ErrorIs(t, err, structureerrors.ErrWindowOverlap)
	assert.Equal(t, salarystructure.StatusDraft, draft.Status)
}

func TestStructureService_ApproveSupersedesPredecessor(t *testing.T) {
	ctx := context.Background()
	deps := setupStructureServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	draft := &salarystructure.SalaryStructure{
		ID:            uuid.New(),
		GradeLevel:    "L3",
		EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:        salarystructure.StatusDraft,
	}
	previous := &salarystructure.SalaryStructure{
		ID:            uuid.New(),
		GradeLevel:    "L3",
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        salarystructure.StatusActive,
	}

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*salarystructure.SalaryStructure, error) {
		return draft, nil
	}
	deps.repo.findOpenActiveByGradeFn = func(ctx context.Context, companyID, gradeLevel string) (*salarystructure.SalaryStructure, error) {
		return previous, nil
	}

	var updated []*salarystructure.SalaryStructure
	deps.repo.updateFn = func(ctx context.Context, structure *salarystructure.SalaryStructure) error {
		updated = append(updated, structure)
		return nil
	}

	_, err := deps.service.Approve(ctx, uuid.New().String(), uuid.New().String(), draft.ID.String(), salarystructure.ApproveSalaryStructureRequest{Supersede: true})

	assert.NoError(t, err)
	// Predecessor closed exactly where the successor starts.
	assert.Equal(t, salarystructure.StatusInactive, previous.Status)
	assert.Equal(t, draft.EffectiveFrom, *previous.EffectiveTo)
	assert.Equal(t, salarystructure.StatusActive, draft.Status)
	assert.Len(t, updated, 2)
}

func TestStructureService_SupersedeRejectsNewerPredecessor(t *testing.T) {
	ctx := context.Background()
	deps := setupStructureServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	draft := &salarystructure.SalaryStructure{
		ID:            uuid.New(),
		GradeLevel:    "L3",
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        salarystructure.StatusDraft,
	}
	previous := &salarystructure.SalaryStructure{
		ID:            uuid.New(),
		GradeLevel:    "L3",
		EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:        salarystructure.StatusActive,
	}

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*salarystructure.SalaryStructure, error) {
		return draft, nil
	}
	deps.repo.findOpenActiveByGradeFn = func(ctx context.Context, companyID, gradeLevel string) (*salarystructure.SalaryStructure, error) {
		return previous, nil
	}

	_, err := deps.service.Approve(ctx, uuid.New().String(), uuid.New().String(), draft.ID.String(), salarystructure.ApproveSalaryStructureRequest{Supersede: true})

	assert.ErrorIs(t, err, structureerrors.ErrWindowOverlap)
}

func TestStructureService_RetireRequiresActive(t *testing.T) {
	ctx := context.Background()
	deps := setupStructureServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*salarystructure.SalaryStructure, error) {
		return &salarystructure.SalaryStructure{ID: uuid.New(), Status: salarystructure.StatusDraft}, nil
	}

	_, err := deps.service.Retire(ctx, uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, structureerrors.ErrInvalidStatusTransition)
}
