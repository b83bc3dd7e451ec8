package salarystructure_test

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"go-payroll/internal/salarystructure"
	structureerrors "go-payroll/internal/salarystructure/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeStructureRepository struct {
	withTxFn                     func(tx *sql.Tx) salarystructure.Repository
	createFn                     func(ctx context.Context, structure *salarystructure.SalaryStructure) error
	findAllByCompanyFn           func(ctx context.Context, companyID string) ([]salarystructure.SalaryStructure, error)
	findByIDAndCompanyFn         func(ctx context.Context, companyID string, id string) (*salarystructure.SalaryStructure, error)
	updateFn                     func(ctx context.Context, structure *salarystructure.SalaryStructure) error
	findActiveByGradeCoveringFn  func(ctx context.Context, companyID, gradeLevel string, asOf time.Time) ([]salarystructure.SalaryStructure, error)
	findOpenActiveByGradeFn      func(ctx context.Context, companyID, gradeLevel string) (*salarystructure.SalaryStructure, error)
	hasOverlappingActiveWindowFn func(ctx context.Context, companyID, gradeLevel string, from time.Time, to *time.Time, excludeID string) (bool, error)
}

func (f *fakeStructureRepository) WithTx(tx *sql.Tx) salarystructure.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeStructureRepository) Create(ctx context.Context, structure *salarystructure.SalaryStructure) error {
	if f.createFn != nil {
		return f.createFn(ctx, structure)
	}
	return nil
}

func (f *fakeStructureRepository) FindAllByCompany(ctx context.Context, companyID string) ([]salarystructure.SalaryStructure, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeStructureRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*salarystructure.SalaryStructure, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeStructureRepository) Update(ctx context.Context, structure *salarystructure.SalaryStructure) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, structure)
	}
	return nil
}

func (f *fakeStructureRepository) FindActiveByGradeCovering(ctx context.Context, companyID, gradeLevel string, asOf time.Time) ([]salarystructure.SalaryStructure, error) {
	if f.findActiveByGradeCoveringFn != nil {
		return f.findActiveByGradeCoveringFn(ctx, companyID, gradeLevel, asOf)
	}
	return nil, nil
}

func (f *fakeStructureRepository) FindOpenActiveByGrade(ctx context.Context, companyID, gradeLevel string) (*salarystructure.SalaryStructure, error) {
	if f.findOpenActiveByGradeFn != nil {
		return f.findOpenActiveByGradeFn(ctx, companyID, gradeLevel)
	}
	return nil, nil
}

func (f *fakeStructureRepository) HasOverlappingActiveWindow(ctx context.Context, companyID, gradeLevel string, from time.Time, to *time.Time, excludeID string) (bool, error) {
	if f.hasOverlappingActiveWindowFn != nil {
		return f.hasOverlappingActiveWindowFn(ctx, companyID, gradeLevel, from, to, excludeID)
	}
	return false, nil
}

func TestResolver_SingleMatch(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	want := salarystructure.SalaryStructure{
		ID:          uuid.New(),
		GradeLevel:  "L3",
		BasicSalary: 30000,
		Status:      salarystructure.StatusActive,
	}

	repo := &fakeStructureRepository{
		findActiveByGradeCoveringFn: func(ctx context.Context, cid, grade string, t time.Time) ([]salarystructure.SalaryStructure, error) {
			return []salarystructure.SalaryStructure{want}, nil
		},
	}
	resolver := salarystructure.NewResolver(repo)

	got, err := resolver.Resolve(ctx, companyID, "L3", asOf)

	assert.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestResolver_NoMatch(t *testing.T) {
	resolver := salarystructure.NewResolver(&fakeStructureRepository{})

	_, err := resolver.Resolve(context.Background(), uuid.New().String(), "L9", time.Now())

	assert.ErrorIs(t, err, structureerrors.ErrNoApplicableStructure)
}

func TestResolver_AmbiguousMatchIsDataIntegrity(t *testing.T) {
	repo := &fakeStructureRepository{
		findActiveByGradeCoveringFn: func(ctx context.Context, cid, grade string, t time.Time) ([]salarystructure.SalaryStructure, error) {
			return []salarystructure.SalaryStructure{
				{ID: uuid.New()},
				{ID: uuid.New()},
			}, nil
		},
	}
	resolver := salarystructure.NewResolver(repo)

	_, err := resolver.Resolve(context.Background(), uuid.New().String(), "L3", time.Now())

	assert.ErrorIs(t, err, structureerrors.ErrAmbiguousStructure)
}

func TestResolver_CollapsesConcurrentLookups(t *testing.T) {
	var calls atomic.Int32
	repo := &fakeStructureRepository{
		findActiveByGradeCoveringFn: func(ctx context.Context, cid, grade string, t time.Time) ([]salarystructure.SalaryStructure, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return []salarystructure.SalaryStructure{{ID: uuid.New()}}, nil
		},
	}
	resolver := salarystructure.NewResolver(repo)

	companyID := uuid.New().String()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, err := resolver.Resolve(context.Background(), companyID, "L3", asOf)
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	assert.Equal(t, int32(1), calls.Load())
}
