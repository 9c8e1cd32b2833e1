package commands

import (
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderChanges is the raw form of an order edit. Nil fields are left untouched.
type OrderChanges struct {
	Quantity     *decimal.Decimal
	Unit         *string
	PricePerUnit *decimal.Decimal
	Quality      *order.Quality
	Notes        *string
}

// UpdateOrderCommand represents a buyer's edit of a pending order.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	changes order.Changes

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates every supplied field.
func NewUpdateOrderCommand(actor kernel.Actor, orderID kernel.UUID, raw OrderChanges) (UpdateOrderCommand, error) {
	c := UpdateOrderCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}

	errList := []error{actor.Validate(), orderID.Validate()}

	if raw.Quantity != nil {
		errList = append(errList, validateQuantity(*raw.Quantity))
		q := *raw.Quantity
		c.changes.Quantity = &q
	}
	if raw.Unit != nil {
		u, err := order.ParseUnit(*raw.Unit)
		errList = append(errList, err)
		c.changes.Unit = &u
	}
	if raw.PricePerUnit != nil {
		price, err := kernel.NewPositiveMoney(*raw.PricePerUnit)
		errList = append(errList, err)
		c.changes.PricePerUnit = &price
	}
	c.changes.Quality = raw.Quality
	c.changes.Notes = raw.Notes

	if err := errors.Join(errList...); err != nil {
		return UpdateOrderCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Actor() kernel.Actor    { return c.actor }
func (c UpdateOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c UpdateOrderCommand) Changes() order.Changes { return c.changes }
