package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"go-payroll/internal/attendance"
	"go-payroll/internal/events"
	"go-payroll/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAttendanceSummaries ingests attendance summaries published by the
// external attendance service. Upserts are keyed on (employee, period), so
// redelivered messages simply overwrite with the same values.
func ConsumeAttendanceSummaries(
	ctx context.Context,
	reader *kafkago.Reader,
	attendanceService attendance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_summary")
	log.Info("attendance summary consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance summary consumer stopped")
				return
			}
			log.Error("fetch attendance summary message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceSummaryEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance summary event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = attendanceService.Upsert(ctx, event.CompanyID, attendance.UpsertAttendanceSummaryRequest{
			EmployeeID:    event.EmployeeID,
			PeriodStart:   event.PeriodStart,
			PeriodEnd:     event.PeriodEnd,
			WorkingDays:   event.WorkingDays,
			PresentDays:   event.PresentDays,
			AbsentDays:    event.AbsentDays,
			PaidLeaveDays: event.PaidLeaveDays,
			Source:        "IMPORT",
		})
		if err != nil {
			if isInvalidSummary(err) {
				// Bad payloads never become valid on redelivery.
				log.Warn("discarding invalid attendance summary event",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("upsert attendance summary failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance summary message failed", zap.Error(err))
			continue
		}

		log.Info("attendance summary ingested",
			zap.String("employee_id", event.EmployeeID),
			zap.String("period_start", event.PeriodStart),
		)
	}
}

func isInvalidSummary(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == apperror.CodeInvalidInput
}
