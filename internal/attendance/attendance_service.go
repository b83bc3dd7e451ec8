package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, companyID string, req UpsertAttendanceSummaryRequest) (AttendanceSummaryResponse, error)
	GetAll(ctx context.Context, companyID string, periodStart string) ([]AttendanceSummaryResponse, error)
	GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, periodStart time.Time) (*AttendanceSummary, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Upsert(
	ctx context.Context,
	companyID string,
	req UpsertAttendanceSummaryRequest,
) (AttendanceSummaryResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}
	if periodStart.After(periodEnd) {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrInvalidDateRange
	}

	if req.PresentDays+req.AbsentDays > req.WorkingDays {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrInvalidDayCounts
	}
	if req.PaidLeaveDays > req.AbsentDays {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrInvalidDayCounts
	}

	source := req.Source
	if source == "" {
		source = "MANUAL"
	}

	summary := &AttendanceSummary{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		WorkingDays:   req.WorkingDays,
		PresentDays:   req.PresentDays,
		AbsentDays:    req.AbsentDays,
		PaidLeaveDays: req.PaidLeaveDays,
		Source:        source,
	}

	if err := s.repo.Upsert(ctx, summary); err != nil {
		return AttendanceSummaryResponse{}, err
	}

	return mapToResponse(*summary), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	periodStart string,
) ([]AttendanceSummaryResponse, error) {
	var filter *time.Time
	if periodStart != "" {
		parsed, err := parseDate(periodStart)
		if err != nil {
			return nil, err
		}
		filter = &parsed
	}

	summaries, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceSummaryResponse, len(summaries))
	for i, summary := range summaries {
		res[i] = mapToResponse(summary)
	}
	return res, nil
}

// GetByEmployeeAndPeriod returns the stored summary, or nil when the
// attendance service has not reported for that employee/period yet; the run
// coordinator then assumes a full-presence default.
func (s *service) GetByEmployeeAndPeriod(
	ctx context.Context,
	companyID, employeeID string,
	periodStart time.Time,
) (*AttendanceSummary, error) {
	summary, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, periodStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return summary, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(summary AttendanceSummary) AttendanceSummaryResponse {
	return AttendanceSummaryResponse{
		ID:            summary.ID.String(),
		EmployeeID:    summary.EmployeeID.String(),
		PeriodStart:   summary.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     summary.PeriodEnd.Format("2006-01-02"),
		WorkingDays:   summary.WorkingDays,
		PresentDays:   summary.PresentDays,
		AbsentDays:    summary.AbsentDays,
		PaidLeaveDays: summary.PaidLeaveDays,
		Source:        summary.Source,
	}
}
