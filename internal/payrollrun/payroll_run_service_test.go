package payrollrun_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/deduction"
	deductionerrors "go-payroll/internal/deduction/errors"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payrollrun"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	periodStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
)

// --- fakes ---

type fakeRunRepository struct {
	items []payrollrun.PayrollRunItem
	runs  []*payrollrun.PayrollRun
}

func (f *fakeRunRepository) WithGorm(tx *gorm.DB) payrollrun.Repository { return f }

func (f *fakeRunRepository) CreateRun(ctx context.Context, run *payrollrun.PayrollRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepository) UpdateRun(ctx context.Context, run *payrollrun.PayrollRun) error {
	return nil
}

func (f *fakeRunRepository) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*payrollrun.PayrollRun, error) {
	for _, run := range f.runs {
		if run.ID.String() == id {
			return run, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) FindAllRunsByCompany(ctx context.Context, companyID string) ([]payrollrun.PayrollRun, error) {
	return nil, nil
}

func (f *fakeRunRepository) CreateItem(ctx context.Context, item *payrollrun.PayrollRunItem) error {
	return nil
}

func (f *fakeRunRepository) UpdateItem(ctx context.Context, item *payrollrun.PayrollRunItem) error {
	f.items = append(f.items, *item)
	return nil
}

type fakeEmployeeService struct {
	employees []employee.Employee
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return nil, nil
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (f *fakeEmployeeService) ListForRun(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeAttendanceService struct {
	summary *attendance.AttendanceSummary
}

func (f *fakeAttendanceService) Upsert(ctx context.Context, companyID string, req attendance.UpsertAttendanceSummaryRequest) (attendance.AttendanceSummaryResponse, error) {
	return attendance.AttendanceSummaryResponse{}, nil
}

func (f *fakeAttendanceService) GetAll(ctx context.Context, companyID string, periodStart string) ([]attendance.AttendanceSummaryResponse, error) {
	return nil, nil
}

func (f *fakeAttendanceService) GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*attendance.AttendanceSummary, error) {
	return f.summary, nil
}

type fakeStructureRepository struct {
	structures map[string][]salarystructure.SalaryStructure
}

func (f *fakeStructureRepository) WithTx(tx *sql.Tx) salarystructure.Repository { return f }

func (f *fakeStructureRepository) Create(ctx context.Context, structure *salarystructure.SalaryStructure) error {
	return nil
}

func (f *fakeStructureRepository) FindAllByCompany(ctx context.Context, companyID string) ([]salarystructure.SalaryStructure, error) {
	return nil, nil
}

func (f *fakeStructureRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*salarystructure.SalaryStructure, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStructureRepository) Update(ctx context.Context, structure *salarystructure.SalaryStructure) error {
	return nil
}

func (f *fakeStructureRepository) FindActiveByGradeCovering(ctx context.Context, companyID, gradeLevel string, asOf time.Time) ([]salarystructure.SalaryStructure, error) {
	return f.structures[gradeLevel], nil
}

func (f *fakeStructureRepository) FindOpenActiveByGrade(ctx context.Context, companyID, gradeLevel string) (*salarystructure.SalaryStructure, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStructureRepository) HasOverlappingActiveWindow(ctx context.Context, companyID, gradeLevel string, from time.Time, to *time.Time, excludeID string) (bool, error) {
	return false, nil
}

type fakeDeductionRepository struct {
	chargeable     []deduction.Deduction
	chargeableErrs []error
	lockCalls      int
	updated        []*deduction.Deduction
}

func (f *fakeDeductionRepository) WithTx(tx *sql.Tx) deduction.Repository    { return f }
func (f *fakeDeductionRepository) WithGorm(tx *gorm.DB) deduction.Repository { return f }

func (f *fakeDeductionRepository) Create(ctx context.Context, d *deduction.Deduction) error {
	return nil
}

func (f *fakeDeductionRepository) FindAllByCompany(ctx context.Context, companyID string) ([]deduction.Deduction, error) {
	return nil, nil
}

func (f *fakeDeductionRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*deduction.Deduction, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeductionRepository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]deduction.Deduction, error) {
	return nil, nil
}

func (f *fakeDeductionRepository) Update(ctx context.Context, d *deduction.Deduction) error {
	f.updated = append(f.updated, d)
	return nil
}

func (f *fakeDeductionRepository) FindChargeableForUpdate(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]deduction.Deduction, error) {
	call := f.lockCalls
	f.lockCalls++
	if call < len(f.chargeableErrs) && f.chargeableErrs[call] != nil {
		return nil, f.chargeableErrs[call]
	}
	out := make([]deduction.Deduction, len(f.chargeable))
	copy(out, f.chargeable)
	return out, nil
}

func (f *fakeDeductionRepository) FindByIDsForUpdate(ctx context.Context, companyID string, ids []string) ([]deduction.Deduction, error) {
	out := make([]deduction.Deduction, len(f.chargeable))
	copy(out, f.chargeable)
	return out, nil
}

type fakePayslipRepository struct {
	committed *payslip.Payslip
	created   []*payslip.Payslip
	reversed  []*payslip.Payslip
}

func (f *fakePayslipRepository) WithGorm(tx *gorm.DB) payslip.Repository { return f }

func (f *fakePayslipRepository) Create(ctx context.Context, p *payslip.Payslip) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakePayslipRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payslip.Payslip, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayslipRepository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]payslip.Payslip, error) {
	return nil, nil
}

func (f *fakePayslipRepository) FindCommitted(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*payslip.Payslip, error) {
	return f.committed, nil
}

func (f *fakePayslipRepository) MarkReversed(ctx context.Context, p *payslip.Payslip, now time.Time) error {
	p.Status = payslip.StatusReversed
	f.reversed = append(f.reversed, p)
	f.committed = nil
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

// --- harness ---

type runServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    payrollrun.Service
	runRepo    *fakeRunRepository
	employees  *fakeEmployeeService
	attendance *fakeAttendanceService
	structures *fakeStructureRepository
	deductions *fakeDeductionRepository
	payslips   *fakePayslipRepository
	outbox     *fakeOutboxRepository
}

func setupRunServiceTest(t *testing.T) *runServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	deps := &runServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		runRepo:    &fakeRunRepository{},
		employees:  &fakeEmployeeService{},
		attendance: &fakeAttendanceService{},
		structures: &fakeStructureRepository{structures: map[string][]salarystructure.SalaryStructure{}},
		deductions: &fakeDeductionRepository{},
		payslips:   &fakePayslipRepository{},
		outbox:     &fakeOutboxRepository{},
	}

	deps.service = payrollrun.NewService(
		gormDB,
		deps.runRepo,
		deps.employees,
		salarystructure.NewResolver(deps.structures),
		deps.attendance,
		deps.deductions,
		deps.payslips,
		&fakeCounterRepository{},
		deps.outbox,
		zap.NewNop(),
		1,
		payrollrun.RetryPolicy{Attempts: 3, BaseBackoff: time.Millisecond},
	)

	return deps
}

func (d *runServiceDeps) addEmployee(grade string) employee.Employee {
	emp := employee.Employee{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		FullName:   "Test Employee",
		GradeLevel: grade,
	}
	d.employees.employees = append(d.employees.employees, emp)
	return emp
}

func (d *runServiceDeps) addStructure(grade string, basic int64) {
	d.structures.structures[grade] = []salarystructure.SalaryStructure{{
		ID:            uuid.New(),
		CompanyID:     uuid.New(),
		GradeLevel:    grade,
		BasicSalary:   basic,
		Status:        salarystructure.StatusActive,
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
}

func createRunRequest() payrollrun.CreatePayrollRunRequest {
	return payrollrun.CreatePayrollRunRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	}
}

// --- tests ---

func TestRunService_SingleEmployeeSucceeds(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.addEmployee("L3")
	deps.addStructure("L3", 30000)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, payrollrun.RunStatusCompleted, resp.Status)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Zero(t, resp.Failed)

	assert.Len(t, deps.payslips.created, 1)
	slip := deps.payslips.created[0]
	assert.Equal(t, int64(30000), slip.NetSalary)
	assert.Equal(t, int64(1), slip.PayslipNumber)
	assert.NotNil(t, slip.RunID)

	// Run completion is relayed through the outbox.
	assert.Len(t, deps.outbox.events, 1)
	assert.Equal(t, "payroll_run.completed", deps.outbox.events[0].EventType)
}

func TestRunService_SkipsAlreadyCommittedPayslip(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	emp := deps.addEmployee("L3")
	deps.addStructure("L3", 30000)
	deps.payslips.committed = &payslip.Payslip{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		Status:     payslip.StatusCommitted,
	}

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Skipped)
	assert.Zero(t, resp.Succeeded)
	assert.Empty(t, deps.payslips.created)
}

func TestRunService_RetriesLockRaceThenFails(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.addEmployee("L3")
	deps.addStructure("L3", 30000)
	deps.deductions.chargeableErrs = []error{
		deductionerrors.ErrConcurrentModification,
		deductionerrors.ErrConcurrentModification,
		deductionerrors.ErrConcurrentModification,
	}

	for i := 0; i < 3; i++ {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
	}

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)
	// Nothing succeeded, so the run itself is finalized FAILED.
	assert.Equal(t, payrollrun.RunStatusFailed, resp.Status)
	assert.Equal(t, 3, deps.deductions.lockCalls)

	item := resp.Items[0]
	assert.Equal(t, payrollrun.ItemStatusFailed, item.Status)
	assert.Equal(t, apperror.CodeConcurrentModification, item.ErrorCode)
	assert.Equal(t, 3, item.Attempts)
}

func TestRunService_RetriesLockRaceThenSucceeds(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.addEmployee("L3")
	deps.addStructure("L3", 30000)
	deps.deductions.chargeableErrs = []error{deductionerrors.ErrConcurrentModification}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 2, resp.Items[0].Attempts)
}

func TestRunService_FailureIsolatedPerEmployee(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	deps.addEmployee("UNKNOWN_GRADE")
	deps.addEmployee("L3")
	deps.addStructure("L3", 30000)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)

	var failed payrollrun.PayrollRunItemResponse
	for _, item := range resp.Items {
		if item.Status == payrollrun.ItemStatusFailed {
			failed = item
		}
	}
	assert.Equal(t, apperror.CodeNoApplicableStructure, failed.ErrorCode)

	report, err := deps.service.GetReport(ctx, uuid.New().String(), resp.ID)
	assert.NoError(t, err)
	assert.Len(t, report.Succeeded, 1)
	assert.Len(t, report.Failed, 1)
	assert.Equal(t, apperror.CodeNoApplicableStructure, report.Failed[0].Code)
}

func TestRunService_ActivatesAndAppliesLoan(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	emp := deps.addEmployee("L3")
	deps.addStructure("L3", 30000)

	loan := deduction.Deduction{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		Type:          deduction.TypeLoan,
		Description:   "festival advance",
		Priority:      deduction.PriorityMedium,
		IsRecurring:   true,
		EffectiveFrom: periodStart,
		Status:        deduction.StatusApproved,
		Loan: &deduction.LoanDetails{
			Principal:          12000,
			InstallmentCount:   12,
			OutstandingBalance: 12000,
		},
	}
	deps.deductions.chargeable = []deduction.Deduction{loan}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)

	slip := deps.payslips.created[0]
	assert.Equal(t, int64(30000-1000), slip.NetSalary)

	// APPROVED moved to ACTIVE, one installment consumed.
	assert.NotEmpty(t, deps.deductions.updated)
	applied := deps.deductions.updated[len(deps.deductions.updated)-1]
	assert.Equal(t, deduction.StatusActive, applied.Status)
	assert.Equal(t, 1, applied.Loan.InstallmentsPaid)
	assert.Equal(t, int64(11000), applied.Loan.OutstandingBalance)

	// Activation is published alongside the run event.
	var types []string
	for _, event := range deps.outbox.events {
		types = append(types, event.EventType)
	}
	assert.Contains(t, types, "deduction.activated")
}

func TestRunService_DeferralWarnsWithoutAdvancingLedger(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	emp := deps.addEmployee("L1")
	deps.addStructure("L1", 500)

	loan := deduction.Deduction{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		Type:          deduction.TypeLoan,
		Description:   "festival advance",
		Priority:      deduction.PriorityMedium,
		IsRecurring:   true,
		EffectiveFrom: periodStart,
		Status:        deduction.StatusActive,
		Loan: &deduction.LoanDetails{
			Principal:          12000,
			InstallmentCount:   12,
			OutstandingBalance: 12000,
		},
	}
	tax := deduction.Deduction{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		Type:          deduction.TypeStatutory,
		Description:   "professional tax",
		Method:        deduction.MethodFixed,
		BaseAmount:    450,
		Priority:      deduction.PriorityUrgent,
		IsRecurring:   true,
		EffectiveFrom: periodStart,
		Status:        deduction.StatusActive,
	}
	deps.deductions.chargeable = []deduction.Deduction{loan, tax}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Warnings)
	assert.Equal(t, 1, resp.Items[0].WarningCount)

	// The deferred loan kept its full balance.
	for _, d := range deps.deductions.updated {
		if d.IsLoan() {
			t.Fatalf("deferred loan must not be written, got update for %s", d.ID)
		}
	}

	slip := deps.payslips.created[0]
	var deferred bool
	for _, line := range slip.Lines {
		if line.Category == payslip.CategoryDeferred {
			deferred = true
			assert.Equal(t, int64(1000), line.Amount)
		}
	}
	assert.True(t, deferred)
}

func TestRunService_PersistsExpiryCompletion(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	emp := deps.addEmployee("L1")
	deps.addStructure("L1", 1000)

	// Recurring charge larger than gross, whose window ends with this
	// period: it is reduced under insufficient gross, yet still completes by
	// expiry. The COMPLETED row must be written, not just announced.
	expiry := periodEnd
	dues := deduction.Deduction{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		Type:          deduction.TypeVoluntary,
		Description:   "welfare fund arrears",
		Method:        deduction.MethodFixed,
		BaseAmount:    2000,
		Priority:      deduction.PriorityMedium,
		IsRecurring:   true,
		EffectiveFrom: periodStart,
		EffectiveTo:   &expiry,
		Status:        deduction.StatusActive,
	}
	deps.deductions.chargeable = []deduction.Deduction{dues}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(ctx, uuid.New().String(), uuid.New().String(), createRunRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Warnings)

	assert.Len(t, deps.deductions.updated, 1)
	assert.Equal(t, dues.ID, deps.deductions.updated[0].ID)
	assert.Equal(t, deduction.StatusCompleted, deps.deductions.updated[0].Status)

	var types []string
	for _, event := range deps.outbox.events {
		types = append(types, event.EventType)
	}
	assert.Contains(t, types, "deduction.completed")
}

func TestRunService_RecomputeReversesLoanInstallment(t *testing.T) {
	ctx := context.Background()
	deps := setupRunServiceTest(t)
	defer deps.db.Close()

	emp := deps.addEmployee("L3")
	deps.addStructure("L3", 30000)

	loanID := uuid.New()
	deps.deductions.chargeable = []deduction.Deduction{{
		ID:            loanID,
		EmployeeID:    emp.ID,
		Type:          deduction.TypeLoan,
		Description:   "festival advance",
		Priority:      deduction.PriorityMedium,
		IsRecurring:   true,
		EffectiveFrom: periodStart,
		Status:        deduction.StatusActive,
		Loan: &deduction.LoanDetails{
			Principal:          12000,
			InstallmentCount:   12,
			InstallmentsPaid:   1,
			OutstandingBalance: 11000,
		},
	}}

	run := &payrollrun.PayrollRun{
		ID:          uuid.New(),
		CompanyID:   uuid.New(),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      payrollrun.RunStatusCompleted,
	}
	deps.runRepo.runs = append(deps.runRepo.runs, run)

	deps.payslips.committed = &payslip.Payslip{
		ID:          uuid.New(),
		EmployeeID:  emp.ID,
		PeriodStart: periodStart,
		Status:      payslip.StatusCommitted,
		Lines: []payslip.PayslipLine{{
			Category:    payslip.CategoryLoanInstallment,
			Name:        "festival advance",
			DeductionID: &loanID,
			Amount:      1000,
		}},
	}

	// Reversal transaction, then the fresh computation's transaction.
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Recompute(ctx, run.CompanyID.String(), uuid.New().String(), run.ID.String(), payrollrun.RecomputePayslipRequest{
		EmployeeID:  emp.ID.String(),
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})

	assert.NoError(t, err)
	assert.Len(t, deps.payslips.reversed, 1)

	// Ledger compensated before the fresh charge: the reversal restored the
	// balance, then the recompute consumed one installment again.
	assert.Equal(t, payslip.StatusCommitted, resp.Status)
	assert.Equal(t, int64(29000), resp.NetSalary)
}
