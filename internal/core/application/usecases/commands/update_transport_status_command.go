package commands

import (
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/guard"
)

var ErrUpdateTransportStatusCommandIsNotConstructed = errors.New(
	"UpdateTransportStatusCommand must be created via NewUpdateTransportStatusCommand constructor",
)

// UpdateTransportStatusCommand moves a transport leg through its lifecycle.
type UpdateTransportStatusCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	transportID kernel.UUID
	change      transport.StatusChange

	guard guard.ConstructorGuard
}

// NewUpdateTransportStatusCommand parses status and validates the optional location.
func NewUpdateTransportStatusCommand(
	actor kernel.Actor,
	transportID kernel.UUID,
	status string,
	location *kernel.GeoPoint,
	notes string,
	signature string,
) (UpdateTransportStatusCommand, error) {
	parsed, statusErr := transport.ParseStatus(status)

	var locationErr error
	if location != nil {
		locationErr = location.Validate()
	}

	if err := errors.Join(actor.Validate(), transportID.Validate(), statusErr, locationErr); err != nil {
		return UpdateTransportStatusCommand{}, err
	}

	return UpdateTransportStatusCommand{
		actor:       actor,
		transportID: transportID,
		change: transport.StatusChange{
			Status:    parsed,
			Location:  location,
			Notes:     notes,
			Signature: signature,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTransportStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTransportStatusCommandIsNotConstructed)
}

func (c UpdateTransportStatusCommand) Actor() kernel.Actor            { return c.actor }
func (c UpdateTransportStatusCommand) TransportID() kernel.UUID       { return c.transportID }
func (c UpdateTransportStatusCommand) Change() transport.StatusChange { return c.change }
