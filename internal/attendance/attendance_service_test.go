package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	attendanceerrors "go-payroll/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	upsertFn                  func(ctx context.Context, summary *attendance.AttendanceSummary) error
	findAllByCompanyFn        func(ctx context.Context, companyID string, periodStart *time.Time) ([]attendance.AttendanceSummary, error)
	findByEmployeeAndPeriodFn func(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*attendance.AttendanceSummary, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) Upsert(ctx context.Context, summary *attendance.AttendanceSummary) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, summary)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindAllByCompany(ctx context.Context, companyID string, periodStart *time.Time) ([]attendance.AttendanceSummary, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, periodStart)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*attendance.AttendanceSummary, error) {
	if f.findByEmployeeAndPeriodFn != nil {
		return f.findByEmployeeAndPeriodFn(ctx, companyID, employeeID, periodStart)
	}
	return nil, gorm.ErrRecordNotFound
}

func validUpsertRequest() attendance.UpsertAttendanceSummaryRequest {
	return attendance.UpsertAttendanceSummaryRequest{
		EmployeeID:    uuid.New().String(),
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-31",
		WorkingDays:   26,
		PresentDays:   22,
		AbsentDays:    3,
		PaidLeaveDays: 1,
	}
}

func TestAttendanceService_UpsertDefaultsToManualSource(t *testing.T) {
	ctx := context.Background()

	var stored *attendance.AttendanceSummary
	repo := &fakeAttendanceRepository{
		upsertFn: func(ctx context.Context, summary *attendance.AttendanceSummary) error {
			stored = summary
			return nil
		},
	}
	service := attendance.NewService(nil, repo)

	resp, err := service.Upsert(ctx, uuid.New().String(), validUpsertRequest())

	assert.NoError(t, err)
	assert.Equal(t, "MANUAL", resp.Source)
	assert.NotNil(t, stored)
	assert.Equal(t, 26, stored.WorkingDays)
	assert.Equal(t, 3, stored.AbsentDays)
}

func TestAttendanceService_UpsertRejectsOvercountedDays(t *testing.T) {
	ctx := context.Background()
	service := attendance.NewService(nil, &fakeAttendanceRepository{})

	req := validUpsertRequest()
	req.PresentDays = 25
	req.AbsentDays = 3

	_, err := service.Upsert(ctx, uuid.New().String(), req)

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDayCounts)
}

func TestAttendanceService_UpsertRejectsPaidLeaveExceedingAbsence(t *testing.T) {
	ctx := context.Background()
	service := attendance.NewService(nil, &fakeAttendanceRepository{})

	req := validUpsertRequest()
	req.AbsentDays = 2
	req.PaidLeaveDays = 3
	req.PresentDays = 20

	_, err := service.Upsert(ctx, uuid.New().String(), req)

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDayCounts)
}

func TestAttendanceService_UpsertRejectsInvertedPeriod(t *testing.T) {
	ctx := context.Background()
	service := attendance.NewService(nil, &fakeAttendanceRepository{})

	req := validUpsertRequest()
	req.PeriodStart = "2026-03-31"
	req.PeriodEnd = "2026-03-01"

	_, err := service.Upsert(ctx, uuid.New().String(), req)

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}

func TestAttendanceService_GetByEmployeeAndPeriodDefaultsToNil(t *testing.T) {
	ctx := context.Background()
	service := attendance.NewService(nil, &fakeAttendanceRepository{})

	summary, err := service.GetByEmployeeAndPeriod(ctx, uuid.New().String(), uuid.New().String(), time.Now())

	assert.NoError(t, err)
	assert.Nil(t, summary)
}

func TestAttendanceService_GetByEmployeeAndPeriodReturnsStored(t *testing.T) {
	ctx := context.Background()

	want := &attendance.AttendanceSummary{
		ID:          uuid.New(),
		WorkingDays: 26,
		PresentDays: 26,
	}
	repo := &fakeAttendanceRepository{
		findByEmployeeAndPeriodFn: func(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*attendance.AttendanceSummary, error) {
			return want, nil
		},
	}
	service := attendance.NewService(nil, repo)

	summary, err := service.GetByEmployeeAndPeriod(ctx, uuid.New().String(), uuid.New().String(), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, want, summary)
}
