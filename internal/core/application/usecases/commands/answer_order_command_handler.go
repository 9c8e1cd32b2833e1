package commands

import (
	"context"
	"time"

	"farmtrade/internal/core/domain/model/notification"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/ports"
)

// AcceptOrderCommandHandler records the seller's acceptance and tells the buyer.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
}

func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory, notifier ports.NotificationDispatcher,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Accept(cmd.Actor(), cmd.Notes(), now)
	})
	if err != nil {
		return nil, err
	}

	h.notifier.Dispatch(ctx, notification.OrderStatusChanged(o, o.BuyerID(), now))
	return o, nil
}

// RejectOrderCommandHandler records the seller's refusal and tells the buyer.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
}

func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory, notifier ports.NotificationDispatcher,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Reject(cmd.Actor(), cmd.Reason(), now)
	})
	if err != nil {
		return nil, err
	}

	h.notifier.Dispatch(ctx, notification.OrderStatusChanged(o, o.BuyerID(), now))
	return o, nil
}

// CancelOrderCommandHandler withdraws an order and tells the other party.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory, notifier ports.NotificationDispatcher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Cancel(cmd.Actor(), cmd.Reason(), now)
	})
	if err != nil {
		return nil, err
	}

	recipient := o.SellerID()
	if cmd.Actor().Is(o.SellerID()) {
		recipient = o.BuyerID()
	}
	h.notifier.Dispatch(ctx, notification.OrderStatusChanged(o, recipient, now))
	return o, nil
}
