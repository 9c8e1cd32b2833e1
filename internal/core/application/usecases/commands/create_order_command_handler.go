package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/notification"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/pkg/errs"
)

// CreateOrderCommandHandler places purchase orders.
//
// Business rules:
//   - Only buyers place orders
//   - The listing must exist, belong to the seller and hold at least the ordered quantity
//   - The seller must be a registered farmer
//   - The order gets the next "PO-..." number and starts pending
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	listings   ports.ListingCatalog
	profiles   ports.ProfileStore
	notifier   ports.NotificationDispatcher
	metrics    ports.FulfillmentMetrics
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	listings ports.ListingCatalog,
	profiles ports.ProfileStore,
	notifier ports.NotificationDispatcher,
	metrics ports.FulfillmentMetrics,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		listings:   listings,
		profiles:   profiles,
		notifier:   notifier,
		metrics:    metrics,
	}
}

// Handle validates the request against the listing and the seller and persists a new
// pending order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.Actor().Role() != kernel.RoleBuyer {
		return nil, errs.NewUnauthorizedError(cmd.Actor().ID(), "place orders")
	}

	if err := h.checkListing(ctx, cmd); err != nil {
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

	seq, err := uow.SequenceRepository().Next(ctx, SequenceOrders)
	if err != nil {
		return nil, err
	}

	number, err := kernel.NewDocumentNumber(kernel.OrderNumberPrefix, now, seq)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, cmd.Actor().ID(), cmd.SellerID(), cmd.ListingID(),
		order.Terms{
			Quantity:     cmd.Quantity(),
			Unit:         cmd.Unit(),
			PricePerUnit: cmd.PricePerUnit(),
			Quality:      cmd.Quality(),
			Notes:        cmd.Notes(),
		}, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.OrderCreated(ctx)
	h.notifier.Dispatch(ctx, notification.OrderPlaced(o, now))

	return o, nil
}

func (h *CreateOrderCommandHandler) checkListing(ctx context.Context, cmd CreateOrderCommand) error {
	listing, err := h.listings.GetListing(ctx, cmd.ListingID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("listing", err)
	}
	if err != nil {
		return err
	}

	seller, err := h.profiles.GetUser(ctx, cmd.SellerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("seller", err)
	}
	if err != nil {
		return err
	}

	if seller.Role != kernel.RoleFarmer {
		return errs.NewValueIsInvalidErrorWithCause(
			"seller", fmt.Errorf("%s is a %s, not a farmer", seller.ID, seller.Role))
	}
	if !listing.SellerID.IsEqual(cmd.SellerID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"listing", fmt.Errorf("%s is not listed by seller %s", listing.ID, cmd.SellerID()))
	}
	if cmd.Quantity().GreaterThan(listing.Quantity) {
		return errs.NewValueIsOutOfRangeError("quantity", cmd.Quantity().String(), "0", listing.Quantity.String())
	}

	return nil
}
