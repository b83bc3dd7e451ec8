package payrollrun

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/deduction"
	deductionerrors "go-payroll/internal/deduction/errors"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payslip"
	paysliperrors "go-payroll/internal/payslip/errors"
	payrollrunerrors "go-payroll/internal/payrollrun/errors"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_run_service.go -destination=mock/payroll_run_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePayrollRunRequest) (PayrollRunResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error)
	// GetReport summarizes a run's items by outcome.
	GetReport(ctx context.Context, companyID, id string) (RunReportResponse, error)
	// Recompute reverses one employee's committed payslip for the run's
	// period, compensating the ledger, and computes a fresh one.
	Recompute(ctx context.Context, companyID, actorID, runID string, req RecomputePayslipRequest) (payslip.PayslipResponse, error)
}

// RetryPolicy bounds how often an employee's transaction is retried after a
// lost row-lock race.
type RetryPolicy struct {
	Attempts    int
	BaseBackoff time.Duration
}

type service struct {
	db            *gorm.DB
	runRepo       Repository
	employeeSvc   employee.Service
	resolver      *salarystructure.Resolver
	attendanceSvc attendance.Service
	deductionRepo deduction.Repository
	payslipRepo   payslip.Repository
	counterRepo   counter.Repository
	outboxRepo    kafka.OutboxRepository
	logger        *zap.Logger

	poolSize int
	retry    RetryPolicy
}

func NewService(
	db *gorm.DB,
	runRepo Repository,
	employeeSvc employee.Service,
	resolver *salarystructure.Resolver,
	attendanceSvc attendance.Service,
	deductionRepo deduction.Repository,
	payslipRepo payslip.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger *zap.Logger,
	poolSize int,
	retry RetryPolicy,
) Service {
	if poolSize <= 0 {
		poolSize = 1
	}
	if retry.Attempts <= 0 {
		retry.Attempts = 1
	}
	return &service{
		db:            db,
		runRepo:       runRepo,
		employeeSvc:   employeeSvc,
		resolver:      resolver,
		attendanceSvc: attendanceSvc,
		deductionRepo: deductionRepo,
		payslipRepo:   payslipRepo,
		counterRepo:   counterRepo,
		outboxRepo:    outboxRepo,
		logger:        logger,
		poolSize:      poolSize,
		retry:         retry,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePayrollRunRequest,
) (PayrollRunResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidActorID
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if periodStart.After(periodEnd) {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidDateRange
	}

	employees, err := s.employeeSvc.ListForRun(ctx, companyID)
	if err != nil {
		return PayrollRunResponse{}, err
	}

	run := &PayrollRun{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Status:        RunStatusRunning,
		EmployeeCount: len(employees),
		TriggeredBy:   actorUUID,
		StartedAt:     time.Now().UTC(),
	}
	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, err
	}

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Info("payroll run started",
		zap.String("run_id", run.ID.String()),
		zap.String("company_id", companyID),
		zap.Int("employees", len(employees)),
	)

	items := make([]PayrollRunItem, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.poolSize)
	for i := range employees {
		i := i
		g.Go(func() error {
			items[i] = s.processEmployee(gctx, run, employees[i])
			return nil
		})
	}
	// Workers report failures through their run item, never an error.
	_ = g.Wait()

	for _, item := range items {
		switch item.Status {
		case ItemStatusSucceeded:
			run.Succeeded++
			if item.WarningCount > 0 {
				run.Warnings++
			}
		case ItemStatusSkipped:
			run.Skipped++
		default:
			run.Failed++
		}
	}

	finishedAt := time.Now().UTC()
	run.FinishedAt = &finishedAt
	run.Status = RunStatusCompleted
	if run.Succeeded == 0 && run.Failed > 0 {
		run.Status = RunStatusFailed
	}
	run.Items = items

	if err := s.runRepo.UpdateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, err
	}

	if err := s.enqueueRunCompleted(ctx, run); err != nil {
		logger.Warn("failed to enqueue run completed event", zap.Error(err))
	}

	logger.Info("payroll run finished",
		zap.String("run_id", run.ID.String()),
		zap.Int("succeeded", run.Succeeded),
		zap.Int("warnings", run.Warnings),
		zap.Int("failed", run.Failed),
		zap.Int("skipped", run.Skipped),
	)

	return mapToResponse(*run), nil
}

// processEmployee computes one employee's payslip inside its own
// transaction and always returns a finalized run item. A failure here is
// isolated: it never aborts the sibling workers.
func (s *service) processEmployee(
	ctx context.Context,
	run *PayrollRun,
	emp employee.Employee,
) PayrollRunItem {
	item := PayrollRunItem{
		ID:         uuid.New(),
		RunID:      run.ID,
		CompanyID:  run.CompanyID,
		EmployeeID: emp.ID,
		Status:     ItemStatusProcessing,
	}
	if err := s.runRepo.CreateItem(ctx, &item); err != nil {
		fillItemError(&item, err)
		return item
	}

	companyID := run.CompanyID.String()

	existing, err := s.payslipRepo.FindCommitted(ctx, companyID, emp.ID.String(), run.PeriodStart)
	if err != nil {
		s.finalizeItem(ctx, &item, nil, 0, err)
		return item
	}
	if existing != nil {
		item.PayslipID = &existing.ID
		s.finalizeItem(ctx, &item, &existing.ID, 0, paysliperrors.ErrAlreadyCommitted)
		return item
	}

	committed, warnings, attempts, err := s.computeWithRetry(ctx, companyID, emp, run.PeriodStart, run.PeriodEnd, &run.ID)
	item.Attempts = attempts
	if err != nil {
		s.finalizeItem(ctx, &item, nil, 0, err)
		return item
	}

	s.finalizeItem(ctx, &item, &committed.ID, warnings, nil)
	return item
}

// computeWithRetry runs the per-employee transaction, retrying lock races
// with exponential backoff.
func (s *service) computeWithRetry(
	ctx context.Context,
	companyID string,
	emp employee.Employee,
	periodStart, periodEnd time.Time,
	runID *uuid.UUID,
) (*payslip.Payslip, int, int, error) {
	var committed *payslip.Payslip
	var warnings int
	var err error

	attempts := 0
	for attempts < s.retry.Attempts {
		attempts++
		committed, warnings, err = s.computeAndCommit(ctx, companyID, emp, periodStart, periodEnd, runID)
		if !errors.Is(err, deductionerrors.ErrConcurrentModification) {
			break
		}
		if attempts == s.retry.Attempts {
			break
		}

		backoff := s.retry.BaseBackoff << (attempts - 1)
		select {
		case <-ctx.Done():
			return nil, 0, attempts, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return committed, warnings, attempts, err
}

// computeAndCommit is the atomic unit: lock the ledger, activate what the
// period now covers, calculate, advance state for fully applied deductions,
// and insert the payslip. Rollback leaves no partial ledger mutation.
func (s *service) computeAndCommit(
	ctx context.Context,
	companyID string,
	emp employee.Employee,
	periodStart, periodEnd time.Time,
	runID *uuid.UUID,
) (*payslip.Payslip, int, error) {
	structure, err := s.resolver.Resolve(ctx, companyID, emp.GradeLevel, periodStart)
	if err != nil {
		return nil, 0, err
	}

	summary, err := s.attendanceSvc.GetByEmployeeAndPeriod(ctx, companyID, emp.ID.String(), periodStart)
	if err != nil {
		return nil, 0, err
	}

	var committed *payslip.Payslip
	var warnings int

	err = s.db.Transaction(func(tx *gorm.DB) error {
		dq := s.deductionRepo.WithGorm(tx)
		pq := s.payslipRepo.WithGorm(tx)

		locked, err := dq.FindChargeableForUpdate(ctx, companyID, emp.ID.String(), periodStart, periodEnd)
		if err != nil {
			return err
		}

		var activated []*deduction.Deduction
		chargeable := make([]*deduction.Deduction, 0, len(locked))
		for i := range locked {
			d := &locked[i]
			if !d.Covers(periodStart, periodEnd) {
				continue
			}
			if d.Status == deduction.StatusApproved {
				if err := d.Activate(); err != nil {
					return err
				}
				activated = append(activated, d)
			}
			if d.Status == deduction.StatusActive {
				chargeable = append(chargeable, d)
			}
		}

		quotes := make(map[uuid.UUID]int64, len(chargeable))
		for _, d := range chargeable {
			if d.IsLoan() {
				quotes[d.ID] = deduction.InstallmentQuote(d)
			}
		}

		result := payslip.Calculate(payslip.CalculationInput{
			CompanyID:   structure.CompanyID,
			EmployeeID:  emp.ID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Structure:   structure,
			Attendance:  summary,
			Deductions:  chargeable,
			LoanQuotes:  quotes,
		})

		fullyApplied := make(map[uuid.UUID]bool, len(result.FullyApplied))
		for _, id := range result.FullyApplied {
			fullyApplied[id] = true
		}

		var completedDeds []*deduction.Deduction
		now := time.Now().UTC()
		for _, d := range chargeable {
			if fullyApplied[d.ID] {
				if d.IsLoan() {
					if err := d.ApplyInstallment(quotes[d.ID]); err != nil {
						return err
					}
				} else {
					d.TimesApplied++
				}
			}
			if d.ShouldComplete(periodEnd) {
				if d.Status == deduction.StatusActive {
					if err := d.Complete(); err != nil {
						return err
					}
				}
				completedDeds = append(completedDeds, d)
			}
		}
		persisted := make(map[uuid.UUID]bool, len(chargeable))
		for _, d := range activated {
			if err := dq.Update(ctx, d); err != nil {
				return err
			}
			persisted[d.ID] = true
		}
		for _, d := range chargeable {
			if fullyApplied[d.ID] {
				if err := dq.Update(ctx, d); err != nil {
					return err
				}
				persisted[d.ID] = true
			}
		}
		// A deduction can complete by window expiry without being fully
		// applied this period; its COMPLETED state must still be written.
		for _, d := range completedDeds {
			if persisted[d.ID] {
				continue
			}
			if err := dq.Update(ctx, d); err != nil {
				return err
			}
		}

		number, err := s.counterRepo.GetNextValue(ctx, companyID, counter.CounterTypePayslip)
		if err != nil {
			return err
		}

		slip := result.Payslip
		slip.ID = uuid.New()
		slip.RunID = runID
		slip.PayslipNumber = number
		for i := range slip.Lines {
			slip.Lines[i].CompanyID = slip.CompanyID
		}

		if err := pq.Create(ctx, &slip); err != nil {
			return err
		}

		if err := s.enqueueLifecycleEvents(ctx, tx, companyID, emp.ID.String(), activated, completedDeds, now); err != nil {
			return err
		}

		committed = &slip
		warnings = len(result.Deferrals)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return committed, warnings, nil
}

func (s *service) Recompute(
	ctx context.Context,
	companyID, actorID, runID string,
	req RecomputePayslipRequest,
) (payslip.PayslipResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return payslip.PayslipResponse{}, payrollrunerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return payslip.PayslipResponse{}, payrollrunerrors.ErrInvalidActorID
	}

	run, err := s.runRepo.FindRunByIDAndCompany(ctx, companyID, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payslip.PayslipResponse{}, payrollrunerrors.ErrRunNotFound
		}
		return payslip.PayslipResponse{}, err
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if periodStart.After(periodEnd) {
		return payslip.PayslipResponse{}, payrollrunerrors.ErrInvalidDateRange
	}

	emps, err := s.employeeSvc.ListForRun(ctx, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	var emp *employee.Employee
	for i := range emps {
		if emps[i].ID.String() == req.EmployeeID {
			emp = &emps[i]
			break
		}
	}
	if emp == nil {
		return payslip.PayslipResponse{}, payrollrunerrors.ErrNothingToRecompute
	}

	prior, err := s.payslipRepo.FindCommitted(ctx, companyID, req.EmployeeID, periodStart)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if prior == nil {
		return payslip.PayslipResponse{}, payrollrunerrors.ErrNothingToRecompute
	}

	// Phase 1: reverse. The prior payslip's ledger mutations are compensated
	// from its own lines, then it is marked REVERSED. Committing this before
	// the fresh computation keeps each phase an atomic unit.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		dq := s.deductionRepo.WithGorm(tx)
		pq := s.payslipRepo.WithGorm(tx)

		if err := s.reverseLedgerMutations(ctx, dq, companyID, prior); err != nil {
			return err
		}
		return pq.MarkReversed(ctx, prior, time.Now().UTC())
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Info("payslip reversed for recompute",
		zap.String("payslip_id", prior.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	// Phase 2: fresh computation against the compensated ledger.
	committed, _, _, err := s.computeWithRetry(ctx, companyID, *emp, periodStart, periodEnd, &run.ID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return payslip.MapToResponse(*committed), nil
}

// reverseLedgerMutations undoes the ledger effects recorded on the prior
// payslip: loan installments restore balance and count, one-shot deductions
// give back their application. Deferred lines carried no mutation.
func (s *service) reverseLedgerMutations(
	ctx context.Context,
	dq deduction.Repository,
	companyID string,
	prior *payslip.Payslip,
) error {
	charged := make(map[string]int64)
	for _, line := range prior.Lines {
		if line.DeductionID == nil || line.Category == payslip.CategoryDeferred {
			continue
		}
		charged[line.DeductionID.String()] += line.Amount
	}
	if len(charged) == 0 {
		return nil
	}

	ids := make([]string, 0, len(charged))
	for id := range charged {
		ids = append(ids, id)
	}

	locked, err := dq.FindByIDsForUpdate(ctx, companyID, ids)
	if err != nil {
		return err
	}

	for i := range locked {
		d := &locked[i]
		amount := charged[d.ID.String()]
		if d.IsLoan() {
			if err := d.ReverseInstallment(amount); err != nil {
				return err
			}
		} else {
			if d.Status == deduction.StatusCompleted {
				d.Status = deduction.StatusActive
			}
			if d.TimesApplied > 0 {
				d.TimesApplied--
			}
		}
		if err := dq.Update(ctx, d); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PayrollRunResponse, error) {
	runs, err := s.runRepo.FindAllRunsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		res[i] = mapToResponse(run)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollRunResponse{}, payrollrunerrors.ErrRunNotFound
	}

	run, err := s.runRepo.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRunResponse{}, payrollrunerrors.ErrRunNotFound
		}
		return PayrollRunResponse{}, err
	}

	return mapToResponse(*run), nil
}

func (s *service) GetReport(ctx context.Context, companyID, id string) (RunReportResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RunReportResponse{}, payrollrunerrors.ErrRunNotFound
	}

	run, err := s.runRepo.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunReportResponse{}, payrollrunerrors.ErrRunNotFound
		}
		return RunReportResponse{}, err
	}

	return mapToReport(*run), nil
}

// finalizeItem resolves the PROCESSING marker to its terminal status. An
// ErrAlreadyCommitted outcome is a SKIP, not a failure: the at-most-once
// guarantee held.
func (s *service) finalizeItem(
	ctx context.Context,
	item *PayrollRunItem,
	payslipID *uuid.UUID,
	warnings int,
	cause error,
) {
	switch {
	case cause == nil:
		item.Status = ItemStatusSucceeded
		item.PayslipID = payslipID
		item.WarningCount = warnings
	case errors.Is(cause, paysliperrors.ErrAlreadyCommitted):
		item.Status = ItemStatusSkipped
	default:
		fillItemError(item, cause)
	}

	if err := s.runRepo.UpdateItem(ctx, item); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to finalize run item",
			zap.String("item_id", item.ID.String()),
			zap.Error(err),
		)
	}
}

func fillItemError(item *PayrollRunItem, cause error) {
	item.Status = ItemStatusFailed
	var appErr *apperror.AppError
	if errors.As(cause, &appErr) {
		item.ErrorCode = appErr.Code
		item.ErrorMessage = appErr.Message
		return
	}
	item.ErrorCode = apperror.CodeInternalError
	item.ErrorMessage = cause.Error()
}

func (s *service) enqueueLifecycleEvents(
	ctx context.Context,
	tx *gorm.DB,
	companyID, employeeID string,
	activated, completed []*deduction.Deduction,
	now time.Time,
) error {
	if len(activated) == 0 && len(completed) == 0 {
		return nil
	}

	sqlTx, ok := tx.Statement.ConnPool.(*sql.Tx)
	if !ok {
		return errors.New("lifecycle events require a transactional connection")
	}
	outbox := s.outboxRepo.WithTx(sqlTx)
	requestID := contextutil.GetRequestID(ctx)

	emit := func(eventType string, d *deduction.Deduction) error {
		event, err := kafka.NewOutboxEvent(
			requestID,
			"deduction",
			d.ID.String(),
			eventType,
			events.DeductionLifecycleTopic,
			events.DeductionLifecycleEvent{
				EventType:   eventType,
				DeductionID: d.ID.String(),
				EmployeeID:  employeeID,
				CompanyID:   companyID,
				OccurredAt:  now,
			},
		)
		if err != nil {
			return err
		}
		return outbox.Create(ctx, event)
	}

	for _, d := range activated {
		if err := emit(events.DeductionActivated, d); err != nil {
			return err
		}
	}
	for _, d := range completed {
		if err := emit(events.DeductionCompleted, d); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) enqueueRunCompleted(ctx context.Context, run *PayrollRun) error {
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"payroll_run",
		run.ID.String(),
		events.PayrollRunCompleted,
		events.PayrollRunTopic,
		events.PayrollRunCompletedEvent{
			EventType:   events.PayrollRunCompleted,
			RunID:       run.ID.String(),
			CompanyID:   run.CompanyID.String(),
			PeriodStart: run.PeriodStart.Format("2006-01-02"),
			PeriodEnd:   run.PeriodEnd.Format("2006-01-02"),
			Succeeded:   run.Succeeded,
			Warnings:    run.Warnings,
			Failed:      run.Failed,
			OccurredAt:  time.Now().UTC(),
		},
	)
	if err != nil {
		return err
	}
	return s.outboxRepo.Create(ctx, event)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollrunerrors.ErrInvalidDateFormat
	}
	return t, nil
}
