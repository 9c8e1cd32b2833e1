package commands

import (
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"
)

var ErrRecordMonitoringCommandIsNotConstructed = errors.New(
	"RecordMonitoringCommand must be created via NewRecordMonitoringCommand constructor",
)

// RecordMonitoringCommand carries an environmental reading for a transport leg.
type RecordMonitoringCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	transportID kernel.UUID
	reading     transport.Reading

	guard guard.ConstructorGuard
}

func NewRecordMonitoringCommand(
	actor kernel.Actor,
	transportID kernel.UUID,
	temperature *float64,
	humidity *float64,
	photos []string,
) (RecordMonitoringCommand, error) {
	var readingErr error
	if temperature == nil && humidity == nil && len(photos) == 0 {
		readingErr = errs.NewValueIsRequiredError("temperature, humidity or photos")
	}

	if err := errors.Join(actor.Validate(), transportID.Validate(), readingErr); err != nil {
		return RecordMonitoringCommand{}, err
	}

	return RecordMonitoringCommand{
		actor:       actor,
		transportID: transportID,
		reading: transport.Reading{
			Temperature: temperature,
			Humidity:    humidity,
			Photos:      photos,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RecordMonitoringCommand) Validate() error {
	return c.guard.Validate(ErrRecordMonitoringCommandIsNotConstructed)
}

func (c RecordMonitoringCommand) Actor() kernel.Actor        { return c.actor }
func (c RecordMonitoringCommand) TransportID() kernel.UUID   { return c.transportID }
func (c RecordMonitoringCommand) Reading() transport.Reading { return c.reading }
