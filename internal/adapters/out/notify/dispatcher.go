// Package notify fans notifications out to every configured sink.
package notify

import (
	"context"

	"farmtrade/internal/core/domain/model/notification"
	"farmtrade/internal/core/ports"

	"github.com/sirupsen/logrus"
)

var _ ports.NotificationDispatcher = (*Dispatcher)(nil)

// Dispatcher delivers each batch to all sinks in order. A failing sink is logged and
// does not stop the others.
type Dispatcher struct {
	sinks  []ports.NotificationSink
	logger *logrus.Entry
}

func NewDispatcher(logger *logrus.Logger, sinks ...ports.NotificationSink) *Dispatcher {
	return &Dispatcher{
		sinks:  sinks,
		logger: logger.WithField("component", "notification_dispatcher"),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, notifications ...notification.Notification) {
	batch := make([]notification.Notification, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"notification_id": n.ID.String(),
				"kind":            n.Kind,
			}).Warn("dropping invalid notification")
			continue
		}
		batch = append(batch, n)
	}
	if len(batch) == 0 {
		return
	}

	for _, sink := range d.sinks {
		if err := sink.Deliver(ctx, batch); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"sink":  sink.Name(),
				"count": len(batch),
			}).Error("notification delivery failed")
		}
	}
}
