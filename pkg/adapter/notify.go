package adapter

import (
	"context"

	"github.com/m-mizutani/recall/pkg/utils/logging"
)

// Notifier displays a titled message to the user. Fire and forget: no
// acknowledgment or delivery guarantee.
type Notifier interface {
	Notify(ctx context.Context, title, message string)
}

// LogNotifier emits notifications to the context logger. The default sink
// for headless runs and tests.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, title, message string) {
	logging.From(ctx).Info("notification", "title", title, "message", message)
}
