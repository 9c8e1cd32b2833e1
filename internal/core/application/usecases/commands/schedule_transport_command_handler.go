package commands

import (
	"context"
	"errors"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/notification"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/core/domain/services"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/pkg/errs"
)

// ScheduleTransportCommandHandler creates the single transport leg of an order and moves
// the order to ready_for_delivery in the same database transaction.
type ScheduleTransportCommandHandler struct {
	uowFactory TransportUoWFactory
	profiles   ports.ProfileStore
	estimator  services.EtaEstimator
	notifier   ports.NotificationDispatcher
	metrics    ports.FulfillmentMetrics
}

func NewScheduleTransportCommandHandler(
	uowFactory TransportUoWFactory,
	profiles ports.ProfileStore,
	estimator services.EtaEstimator,
	notifier ports.NotificationDispatcher,
	metrics ports.FulfillmentMetrics,
) ScheduleTransportCommandHandler {
	return ScheduleTransportCommandHandler{
		uowFactory: uowFactory,
		profiles:   profiles,
		estimator:  estimator,
		notifier:   notifier,
		metrics:    metrics,
	}
}

func (h *ScheduleTransportCommandHandler) Handle(
	ctx context.Context, cmd ScheduleTransportCommand,
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !cmd.Actor().Is(o.SellerID()) {
		return nil, errs.NewUnauthorizedError(cmd.Actor().ID(), "schedule transport for order "+o.Number())
	}

	transportRepo := uow.TransportRepository()
	exists, err := transportRepo.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("transport for order", o.ID())
	}

	switch o.Status() {
	case order.Accepted, order.PaymentPending, order.PaymentConfirmed:
	default:
		return nil, errs.NewInvalidStateError("order "+o.Number(), o.Status(), "schedule transport")
	}

	pickup, err := h.addressOf(ctx, cmd.Pickup(), o.SellerID())
	if err != nil {
		return nil, err
	}
	delivery, err := h.addressOf(ctx, cmd.Delivery(), o.BuyerID())
	if err != nil {
		return nil, err
	}

	eta := h.estimator.Estimate(pickup.Point(), delivery.Point(), now)

	t, err := transport.NewTransport(kernel.NewUUID(), o.ID(), o.BuyerID(), o.SellerID(),
		cmd.Carrier(), pickup, delivery, cmd.PickupDate(), eta, cmd.Notes(), now)
	if err != nil {
		return nil, err
	}

	if err = transportRepo.Add(ctx, t); err != nil {
		return nil, err
	}
	if err = o.MarkReadyForDelivery(t.EstimatedDeliveryDate(), now); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.TransportTransition(ctx, "", t.Status().String())
	h.notifier.Dispatch(ctx,
		notification.TransportStatusChanged(t, now),
		notification.OrderStatusChanged(o, o.BuyerID(), now),
	)
	return t, nil
}

// addressOf returns the given address, or the profile address of the user. A user without
// a stored address yields an empty address; a missing user is not an error here.
func (h *ScheduleTransportCommandHandler) addressOf(
	ctx context.Context, given *kernel.Address, userID kernel.UUID,
) (kernel.Address, error) {
	if given != nil {
		return *given, nil
	}

	profile, err := h.profiles.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.NewAddress("", "", "", "", nil)
		}
		return kernel.Address{}, err
	}
	if profile.Address == nil {
		return kernel.NewAddress("", "", "", "", nil)
	}
	return *profile.Address, nil
}
