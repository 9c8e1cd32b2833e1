package commands

import (
	"context"
	"time"

	"farmtrade/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler applies a buyer's edit to a pending order.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle updates the order and recomputes its total.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Update(cmd.Actor(), cmd.Changes(), time.Now().UTC())
	})
	return o, err
}
