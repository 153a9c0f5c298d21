// Package notify holds the delivery channels for limit alerts.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/terraincognita07/dailybrew/internal/services"
)

type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.Named("alerts")}
}

func (sender *LogSender) Name() string {
	return "log"
}

func (sender *LogSender) Send(_ context.Context, alert services.LimitAlert) error {
	sender.log.Info(alert.Message(),
		zap.Uint("user_id", alert.UserID),
		zap.String("day", alert.Day),
		zap.String("level", string(alert.Level)),
		zap.Int("current_amount", alert.Status.CurrentAmount),
		zap.Int("limit_amount", alert.Status.LimitAmount),
	)
	return nil
}
