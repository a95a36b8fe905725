package notify

import (
	"context"
	"log/slog"
)

// Notifier is a fire-and-forget sink for operator-facing messages.
// Delivery is observational only and never part of a mutation's
// success or failure.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// Console logs notifications through slog.
type Console struct {
	logger *slog.Logger
}

func NewConsole(logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{logger: logger}
}

func (c *Console) Notify(_ context.Context, subject, message string) error {
	c.logger.Info("notify", "subject", subject, "message", message)
	return nil
}
