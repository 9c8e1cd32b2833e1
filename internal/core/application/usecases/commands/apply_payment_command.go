package commands

import (
	"farmtrade/internal/core/domain/model/kernel"
)

// ApplyPaymentCommand asks for a recorded payment to be applied to its order.
// Applying the same transaction twice has no further effect.
type ApplyPaymentCommand struct {
	transactionID kernel.UUID
}

func NewApplyPaymentCommand(transactionID kernel.UUID) ApplyPaymentCommand {
	return ApplyPaymentCommand{transactionID: transactionID}
}

// Validate checks the transaction identifier.
func (c ApplyPaymentCommand) Validate() error {
	return c.transactionID.Validate()
}

func (c ApplyPaymentCommand) TransactionID() kernel.UUID { return c.transactionID }
