package ports

import (
	"context"

	"farmtrade/internal/core/domain/model/notification"
)

// NotificationDispatcher delivers notifications on a best-effort basis. It never fails
// the caller; delivery problems are logged by the implementation.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications ...notification.Notification)
}

// NotificationSink is one delivery channel behind a dispatcher.
type NotificationSink interface {
	Name() string
	Deliver(ctx context.Context, notifications []notification.Notification) error
}
