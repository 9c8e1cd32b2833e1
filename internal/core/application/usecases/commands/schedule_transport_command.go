package commands

import (
	"errors"
	"strings"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"
)

var ErrScheduleTransportCommandIsNotConstructed = errors.New(
	"ScheduleTransportCommand must be created via NewScheduleTransportCommand constructor",
)

// ScheduleTransportCommand asks to create the transport leg of an order.
// Pickup and delivery default to the seller's and buyer's profile addresses when nil.
type ScheduleTransportCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	orderID    kernel.UUID
	pickupDate time.Time
	carrier    transport.Carrier
	pickup     *kernel.Address
	delivery   *kernel.Address
	notes      string

	guard guard.ConstructorGuard
}

func NewScheduleTransportCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	pickupDate time.Time,
	carrier transport.Carrier,
	pickup *kernel.Address,
	delivery *kernel.Address,
	notes string,
) (ScheduleTransportCommand, error) {
	var dateErr, carrierErr error
	if pickupDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("pickupDate")
	}
	if carrier.Name() == "" {
		carrierErr = errs.NewValueIsRequiredError("transporterName")
	}

	var pickupErr, deliveryErr error
	if pickup != nil {
		pickupErr = pickup.Validate()
	}
	if delivery != nil {
		deliveryErr = delivery.Validate()
	}

	if err := errors.Join(
		actor.Validate(), orderID.Validate(), dateErr, carrierErr, pickupErr, deliveryErr,
	); err != nil {
		return ScheduleTransportCommand{}, err
	}

	return ScheduleTransportCommand{
		actor:      actor,
		orderID:    orderID,
		pickupDate: pickupDate.UTC(),
		carrier:    carrier,
		pickup:     pickup,
		delivery:   delivery,
		notes:      strings.TrimSpace(notes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ScheduleTransportCommand) Validate() error {
	return c.guard.Validate(ErrScheduleTransportCommandIsNotConstructed)
}

func (c ScheduleTransportCommand) Actor() kernel.Actor        { return c.actor }
func (c ScheduleTransportCommand) OrderID() kernel.UUID       { return c.orderID }
func (c ScheduleTransportCommand) PickupDate() time.Time      { return c.pickupDate }
func (c ScheduleTransportCommand) Carrier() transport.Carrier { return c.carrier }
func (c ScheduleTransportCommand) Pickup() *kernel.Address    { return c.pickup }
func (c ScheduleTransportCommand) Delivery() *kernel.Address  { return c.delivery }
func (c ScheduleTransportCommand) Notes() string              { return c.notes }
