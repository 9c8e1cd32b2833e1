package commands

import (
	"errors"
	"strings"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand represents a buyer reporting a payment towards an order.
//
// Example:
//
//	cmd, err := NewRecordPaymentCommand(buyer, orderID, decimal.NewFromInt(600), "upi", "UTR123", "")
//	result, err := handler.Handle(ctx, cmd)
//	// result.Order.PaymentStatus() == order.PaymentStatusPartial
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	orderID     kernel.UUID
	amount      kernel.Money
	method      transaction.Method
	reference   string
	description string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand validates amount (> 0) and method.
func NewRecordPaymentCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	amount decimal.Decimal,
	method string,
	reference string,
	description string,
) (RecordPaymentCommand, error) {
	money, amountErr := kernel.NewPositiveMoney(amount)
	parsedMethod, methodErr := transaction.ParseMethod(method)

	if err := errors.Join(actor.Validate(), orderID.Validate(), amountErr, methodErr); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		actor:       actor,
		orderID:     orderID,
		amount:      money,
		method:      parsedMethod,
		reference:   strings.TrimSpace(reference),
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) Actor() kernel.Actor        { return c.actor }
func (c RecordPaymentCommand) OrderID() kernel.UUID       { return c.orderID }
func (c RecordPaymentCommand) Amount() kernel.Money       { return c.amount }
func (c RecordPaymentCommand) Method() transaction.Method { return c.method }
func (c RecordPaymentCommand) Reference() string          { return c.reference }
func (c RecordPaymentCommand) Description() string        { return c.description }
