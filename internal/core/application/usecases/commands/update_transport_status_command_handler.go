package commands

import (
	"context"
	"time"

	"farmtrade/internal/core/domain/model/notification"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/core/ports"
)

// UpdateTransportStatusCommandHandler applies a status change to a transport leg and
// mirrors in_transit and delivered into the order.
//
// Locks are always taken order first, then transport, the same order scheduling uses.
type UpdateTransportStatusCommandHandler struct {
	uowFactory TransportUoWFactory
	notifier   ports.NotificationDispatcher
	metrics    ports.FulfillmentMetrics
}

func NewUpdateTransportStatusCommandHandler(
	uowFactory TransportUoWFactory,
	notifier ports.NotificationDispatcher,
	metrics ports.FulfillmentMetrics,
) UpdateTransportStatusCommandHandler {
	return UpdateTransportStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		metrics:    metrics,
	}
}

func (h *UpdateTransportStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateTransportStatusCommand,
) (*transport.Transport, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transportRepo := uow.TransportRepository()
	orderRepo := uow.OrderRepository()

	unlocked, err := transportRepo.Get(ctx, cmd.TransportID())
	if err != nil {
		return nil, err
	}

	o, err := orderRepo.GetForUpdate(ctx, unlocked.OrderID())
	if err != nil {
		return nil, err
	}

	t, err := transportRepo.GetForUpdate(ctx, cmd.TransportID())
	if err != nil {
		return nil, err
	}

	previous := t.Status()
	if err = t.ChangeStatus(cmd.Actor(), cmd.Change(), now); err != nil {
		return nil, err
	}

	orderChanged := false
	if mirrored, ok := t.Status().OrderStatus(); ok && o.Status() != mirrored {
		if err = o.ApplyTransportStatus(mirrored, now); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
		orderChanged = true
	}

	if err = transportRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.TransportTransition(ctx, previous.String(), t.Status().String())

	notes := []notification.Notification{notification.TransportStatusChanged(t, now)}
	if orderChanged {
		notes = append(notes, notification.OrderStatusChanged(o, o.BuyerID(), now))
	}
	h.notifier.Dispatch(ctx, notes...)

	return t, nil
}
