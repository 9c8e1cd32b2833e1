package commands

import (
	"context"
	"errors"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/notification"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// ApplyOutcome tells what applying a payment did.
type ApplyOutcome string

const (
	ApplyOutcomeApplied        ApplyOutcome = "applied"
	ApplyOutcomeAlreadyApplied ApplyOutcome = "already_applied"
	ApplyOutcomeFailed         ApplyOutcome = "failed"
)

// ApplyPaymentResult carries the transaction and order after the apply step.
type ApplyPaymentResult struct {
	Transaction *transaction.Transaction
	Order       *order.Order
	Outcome     ApplyOutcome
}

// ApplyPaymentCommandHandler adds a recorded payment to its order.
//
// The transaction row is locked first, so two concurrent applies of the same payment
// serialize and the second one sees appliedAt. A payment the order can no longer take
// (cancelled in between, or overpaying) is marked failed instead of being retried forever.
// Buyer and seller statistics are updated after commit and never fail the operation.
type ApplyPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	profiles   ports.ProfileStore
	notifier   ports.NotificationDispatcher
	logger     logrus.FieldLogger
}

func NewApplyPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	profiles ports.ProfileStore,
	notifier ports.NotificationDispatcher,
	logger logrus.FieldLogger,
) *ApplyPaymentCommandHandler {
	return &ApplyPaymentCommandHandler{
		uowFactory: uowFactory,
		profiles:   profiles,
		notifier:   notifier,
		logger:     logger.WithField("component", "apply_payment"),
	}
}

func (h *ApplyPaymentCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentCommand) (ApplyPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApplyPaymentResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ApplyPaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	txRepo := uow.TransactionRepository()
	tx, err := txRepo.GetForUpdate(ctx, cmd.TransactionID())
	if err != nil {
		return ApplyPaymentResult{}, err
	}

	if tx.IsApplied() {
		return ApplyPaymentResult{Transaction: tx, Outcome: ApplyOutcomeAlreadyApplied}, nil
	}
	if !tx.IsApplicable() {
		return ApplyPaymentResult{}, errs.NewInvalidStateError("transaction "+tx.Number(), tx.Status(), "apply")
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, *tx.OrderID())
	if err != nil {
		return ApplyPaymentResult{}, err
	}

	firstPayment := o.AmountPaid().IsZero()
	previous := o.Status()

	if applyErr := o.ApplyPayment(tx.Amount(), now); applyErr != nil {
		if !errors.Is(applyErr, errs.ErrOverpayment) && !errors.Is(applyErr, errs.ErrInvalidState) {
			return ApplyPaymentResult{}, applyErr
		}
		return h.fail(ctx, uow, tx, o, applyErr)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ApplyPaymentResult{}, err
	}
	if err = tx.MarkApplied(now); err != nil {
		return ApplyPaymentResult{}, err
	}
	if err = txRepo.Update(ctx, tx); err != nil {
		return ApplyPaymentResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ApplyPaymentResult{}, err
	}

	h.updateStats(ctx, tx, firstPayment)

	notes := []notification.Notification{notification.PaymentReceived(o, tx, now)}
	if o.Status() != previous {
		notes = append(notes, notification.OrderStatusChanged(o, o.BuyerID(), now))
	}
	h.notifier.Dispatch(ctx, notes...)

	return ApplyPaymentResult{Transaction: tx, Order: o, Outcome: ApplyOutcomeApplied}, nil
}

func (h *ApplyPaymentCommandHandler) fail(
	ctx context.Context, uow PaymentUoW, tx *transaction.Transaction, o *order.Order, cause error,
) (ApplyPaymentResult, error) {
	if err := tx.MarkFailed("not applied to order " + o.Number() + " in status " + o.Status().String()); err != nil {
		return ApplyPaymentResult{}, err
	}
	if err := uow.TransactionRepository().Update(ctx, tx); err != nil {
		return ApplyPaymentResult{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return ApplyPaymentResult{}, err
	}

	h.logger.WithFields(logrus.Fields{
		"transaction": tx.Number(),
		"order":       o.Number(),
	}).WithError(cause).Warn("payment marked failed")

	return ApplyPaymentResult{Transaction: tx, Order: o, Outcome: ApplyOutcomeFailed}, nil
}

func (h *ApplyPaymentCommandHandler) updateStats(ctx context.Context, tx *transaction.Transaction, first bool) {
	count := 0
	if first {
		count = 1
	}

	log := h.logger.WithField("transaction", tx.Number())
	if err := h.profiles.IncrementBuyerStats(ctx, tx.BuyerID(), tx.Amount(), count); err != nil {
		log.WithError(err).Warn("buyer statistics not updated")
	}
	if err := h.profiles.IncrementSellerStats(ctx, tx.SellerID(), tx.Amount(), count); err != nil {
		log.WithError(err).Warn("seller statistics not updated")
	}
}

// RedrivePaymentsCommandHandler applies payments that were recorded but never applied,
// for instance because the process stopped between the two steps.
type RedrivePaymentsCommandHandler struct {
	lister  PaymentUoWFactory
	applier *ApplyPaymentCommandHandler
	metrics ports.FulfillmentMetrics
	logger  logrus.FieldLogger
}

func NewRedrivePaymentsCommandHandler(
	lister PaymentUoWFactory,
	applier *ApplyPaymentCommandHandler,
	metrics ports.FulfillmentMetrics,
	logger logrus.FieldLogger,
) RedrivePaymentsCommandHandler {
	return RedrivePaymentsCommandHandler{
		lister:  lister,
		applier: applier,
		metrics: metrics,
		logger:  logger.WithField("component", "redrive_payments"),
	}
}

// RedriveSummary counts the outcomes of one re-drive pass.
type RedriveSummary struct {
	Applied int
	Skipped int
	Failed  int
	Errors  int
}

// Handle applies up to limit unapplied payments, oldest first. Errors on one payment do
// not stop the pass.
func (h *RedrivePaymentsCommandHandler) Handle(ctx context.Context, limit int) (RedriveSummary, error) {
	if limit <= 0 {
		return RedriveSummary{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	ids, err := h.pending(ctx, limit)
	if err != nil {
		return RedriveSummary{}, err
	}

	var summary RedriveSummary
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return summary, err
		}

		result, applyErr := h.applier.Handle(ctx, NewApplyPaymentCommand(id))
		if applyErr != nil {
			summary.Errors++
			h.metrics.PaymentRedriven(ctx, "error")
			h.logger.WithField("transaction", id.String()).WithError(applyErr).Error("re-drive failed")
			continue
		}

		switch result.Outcome {
		case ApplyOutcomeApplied:
			summary.Applied++
		case ApplyOutcomeAlreadyApplied:
			summary.Skipped++
		case ApplyOutcomeFailed:
			summary.Failed++
		}
		h.metrics.PaymentRedriven(ctx, string(result.Outcome))
	}

	if len(ids) > 0 {
		h.logger.WithFields(logrus.Fields{
			"applied": summary.Applied,
			"skipped": summary.Skipped,
			"failed":  summary.Failed,
			"errors":  summary.Errors,
		}).Info("payments re-driven")
	}
	return summary, nil
}

func (h *RedrivePaymentsCommandHandler) pending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	uow := h.lister.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.TransactionRepository().ListUnapplied(ctx, limit)
}
