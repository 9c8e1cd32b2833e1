package commands

import (
	"context"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// RecordPaymentResult is the transaction written and the order as it is afterwards.
// Applied is false when the second step failed; the payment is then picked up by the
// re-drive.
type RecordPaymentResult struct {
	Transaction *transaction.Transaction
	Order       *order.Order
	Applied     bool
}

// RecordPaymentCommandHandler records payments in two steps.
//
// Step 1 locks the order, checks the amount against what is still owed (counting
// recorded but unapplied payments) and writes a completed transaction. Step 2 applies
// it through ApplyPaymentCommandHandler, which is idempotent by transaction id.
type RecordPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	applier    *ApplyPaymentCommandHandler
	metrics    ports.FulfillmentMetrics
	logger     logrus.FieldLogger
}

func NewRecordPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	applier *ApplyPaymentCommandHandler,
	metrics ports.FulfillmentMetrics,
	logger logrus.FieldLogger,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		applier:    applier,
		metrics:    metrics,
		logger:     logger.WithField("component", "record_payment"),
	}
}

// Handle writes the payment and applies it to the order.
func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (RecordPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordPaymentResult{}, err
	}

	tx, o, err := h.write(ctx, cmd)
	if err != nil {
		return RecordPaymentResult{}, err
	}

	h.metrics.PaymentRecorded(ctx, tx.Method().String(), tx.Amount())

	applied, err := h.applier.Handle(ctx, NewApplyPaymentCommand(tx.ID()))
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"transaction": tx.Number(),
			"order":       o.Number(),
		}).WithError(err).Warn("payment recorded but not applied, leaving it to the re-drive")
		return RecordPaymentResult{Transaction: tx, Order: o}, nil
	}

	return RecordPaymentResult{
		Transaction: applied.Transaction,
		Order:       applied.Order,
		Applied:     applied.Outcome == ApplyOutcomeApplied,
	}, nil
}

func (h *RecordPaymentCommandHandler) write(
	ctx context.Context, cmd RecordPaymentCommand,
) (*transaction.Transaction, *order.Order, error) {
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	if !cmd.Actor().Is(o.BuyerID()) {
		return nil, nil, errs.NewUnauthorizedError(cmd.Actor().ID(), "pay for order "+o.Number())
	}

	txRepo := uow.TransactionRepository()
	unapplied, err := txRepo.SumUnapplied(ctx, o.ID())
	if err != nil {
		return nil, nil, err
	}

	if err = o.CheckPayment(cmd.Amount(), unapplied); err != nil {
		return nil, nil, err
	}

	seq, err := uow.SequenceRepository().Next(ctx, SequenceTransactions)
	if err != nil {
		return nil, nil, err
	}

	number, err := kernel.NewDocumentNumber(kernel.TransactionNumberPrefix, now, seq)
	if err != nil {
		return nil, nil, err
	}

	description := cmd.Description()
	if description == "" {
		description = "Payment for order " + o.Number()
	}

	tx, err := transaction.NewPayment(kernel.NewUUID(), number, o.ID(), o.BuyerID(), o.SellerID(),
		cmd.Amount(), cmd.Method(), cmd.Reference(), description, now)
	if err != nil {
		return nil, nil, err
	}

	if err = txRepo.Add(ctx, tx); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return tx, o, nil
}
