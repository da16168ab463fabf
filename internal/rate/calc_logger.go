package rate

import (
	"context"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"

	"github.com/sirupsen/logrus"
)

// CalculationLogger writes engine events to rate_calculation_logs and mirrors them to logrus.
// A failed insert is reported but never returned.
type CalculationLogger struct {
	repo adapters.CalculationLogRepository
	now  func() time.Time
}

func (l *CalculationLogger) Info(ctx context.Context, msg string, fields map[string]any) {
	l.log(ctx, domain.LogInfo, msg, fields)
}

func (l *CalculationLogger) Warn(ctx context.Context, msg string, fields map[string]any) {
	l.log(ctx, domain.LogWarning, msg, fields)
}

func (l *CalculationLogger) Error(ctx context.Context, msg string, fields map[string]any) {
	l.log(ctx, domain.LogError, msg, fields)
}

func (l *CalculationLogger) log(ctx context.Context, level domain.LogLevel, msg string, fields map[string]any) {
	entry := logrus.WithFields(logrus.Fields(fields))
	switch level {
	case domain.LogError:
		entry.Error(msg)
	case domain.LogWarning:
		entry.Warn(msg)
	default:
		entry.Info(msg)
	}

	if l.repo == nil {
		return
	}
	err := l.repo.Insert(ctx, domain.CalculationLog{Level: level, Message: msg, Context: fields, Timestamp: l.now()})
	if err != nil {
		logrus.WithError(err).WithField("message", msg).Error("Failed to persist calculation log")
	}
}

func NewCalculationLogger(repo adapters.CalculationLogRepository) *CalculationLogger {
	return &CalculationLogger{repo: repo, now: time.Now}
}
