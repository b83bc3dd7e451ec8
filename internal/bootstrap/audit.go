package bootstrap

import (
	"context"

	"go.uber.org/zap"
)

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events that must survive log rotation
// policies. The stdout implementation is the default sink.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type stdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger() AuditLogger {
	return &stdoutAuditLogger{logger: zap.L().Named("audit")}
}

func (s *stdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	s.logger.Info(entry.Message,
		zap.String("action", entry.Action),
		zap.Any("meta", entry.Meta),
	)
}
