package commands

import (
	"errors"
	"fmt"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a buyer's purchase request for a seller's listing.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(buyer, sellerID, listingID,
//	    decimal.NewFromInt(50), "kg", decimal.NewFromInt(20), order.Quality{}, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	sellerID     kernel.UUID
	listingID    kernel.UUID
	quantity     decimal.Decimal
	unit         order.Unit
	pricePerUnit kernel.Money
	quality      order.Quality
	notes        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of a purchase request. Whether the listing
// and the seller exist is checked by the handler.
func NewCreateOrderCommand(
	actor kernel.Actor,
	sellerID kernel.UUID,
	listingID kernel.UUID,
	quantity decimal.Decimal,
	unit string,
	pricePerUnit decimal.Decimal,
	quality order.Quality,
	notes string,
) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		actor:     actor,
		sellerID:  sellerID,
		listingID: listingID,
		quality:   quality,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}

	parsedUnit, unitErr := order.ParseUnit(unit)
	price, priceErr := kernel.NewPositiveMoney(pricePerUnit)

	if err := errors.Join(
		actor.Validate(),
		sellerID.Validate(),
		listingID.Validate(),
		validateQuantity(quantity),
		unitErr,
		priceErr,
	); err != nil {
		return CreateOrderCommand{}, err
	}

	c.quantity = quantity
	c.unit = parsedUnit
	c.pricePerUnit = price
	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor        { return c.actor }
func (c CreateOrderCommand) SellerID() kernel.UUID      { return c.sellerID }
func (c CreateOrderCommand) ListingID() kernel.UUID     { return c.listingID }
func (c CreateOrderCommand) Quantity() decimal.Decimal  { return c.quantity }
func (c CreateOrderCommand) Unit() order.Unit           { return c.unit }
func (c CreateOrderCommand) PricePerUnit() kernel.Money { return c.pricePerUnit }
func (c CreateOrderCommand) Quality() order.Quality     { return c.quality }
func (c CreateOrderCommand) Notes() string              { return c.notes }

func validateQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%s is not greater than 0", quantity.String()))
	}
	return nil
}
