package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"
)

var (
	// ErrTransactionIsNotConstructed is returned when a Transaction was not created
	// through NewPayment or RestoreTransaction.
	ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewPayment constructor")
)

// Transaction is an append-only financial record. A payment is written first and applied
// to its order afterwards; appliedAt marks that the second step happened, which makes
// re-applying idempotent.
type Transaction struct {
	id          kernel.UUID
	number      string
	orderID     *kernel.UUID
	buyerID     kernel.UUID
	sellerID    kernel.UUID
	kind        Kind
	amount      kernel.Money
	method      Method
	status      Status
	description string
	reference   string
	paymentDate time.Time
	appliedAt   *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewPayment creates a completed payment of amount by the buyer towards an order.
//
// Parameters:
//   - id, number: identifier and "TXN-..." number
//   - orderID: the order being paid
//   - buyerID, sellerID: payer and payee
//   - amount: must be positive
//   - method: how the money moved
//   - reference: external reference number, may be empty
//   - description: free text, may be empty
//   - at: payment instant
func NewPayment(
	id kernel.UUID,
	number string,
	orderID kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	amount kernel.Money,
	method Method,
	reference string,
	description string,
	at time.Time,
) (*Transaction, error) {
	t := &Transaction{
		kind:          KindPayment,
		status:        StatusCompleted,
		reference:     reference,
		description:   description,
		paymentDate:   at,
		createdAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setOrder(&orderID),
		t.setParties(buyerID, sellerID),
		t.setAmount(amount),
		t.setMethod(method),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// State is the persisted state of a transaction.
type State struct {
	ID          kernel.UUID
	Number      string
	OrderID     *kernel.UUID
	BuyerID     kernel.UUID
	SellerID    kernel.UUID
	Kind        Kind
	Amount      kernel.Money
	Method      Method
	Status      Status
	Description string
	Reference   string
	PaymentDate time.Time
	AppliedAt   *time.Time
	CreatedAt   time.Time
}

// RestoreTransaction rebuilds a transaction from persisted state.
func RestoreTransaction(s State) (*Transaction, error) {
	t := &Transaction{
		description:   s.Description,
		reference:     s.Reference,
		paymentDate:   s.PaymentDate,
		appliedAt:     s.AppliedAt,
		createdAt:     s.CreatedAt,
		isConstructed: true,
	}

	kind, kindErr := ParseKind(string(s.Kind))
	status, statusErr := ParseStatus(string(s.Status))

	if err := errors.Join(
		t.setID(s.ID),
		t.setNumber(s.Number),
		t.setOrder(s.OrderID),
		t.setParties(s.BuyerID, s.SellerID),
		t.setAmount(s.Amount),
		t.setMethod(s.Method),
		kindErr,
		statusErr,
	); err != nil {
		return nil, err
	}

	t.kind = kind
	t.status = status
	return t, nil
}

// Validate ensures the Transaction was properly constructed.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

func (t *Transaction) ID() kernel.UUID        { return t.id }
func (t *Transaction) Number() string         { return t.number }
func (t *Transaction) OrderID() *kernel.UUID  { return t.orderID }
func (t *Transaction) BuyerID() kernel.UUID   { return t.buyerID }
func (t *Transaction) SellerID() kernel.UUID  { return t.sellerID }
func (t *Transaction) Kind() Kind             { return t.kind }
func (t *Transaction) Amount() kernel.Money   { return t.amount }
func (t *Transaction) Method() Method         { return t.method }
func (t *Transaction) Status() Status         { return t.status }
func (t *Transaction) Description() string    { return t.description }
func (t *Transaction) Reference() string      { return t.reference }
func (t *Transaction) PaymentDate() time.Time { return t.paymentDate }
func (t *Transaction) AppliedAt() *time.Time  { return t.appliedAt }
func (t *Transaction) CreatedAt() time.Time   { return t.createdAt }
func (t *Transaction) IsApplied() bool        { return t.appliedAt != nil }

// IsApplicable reports whether the transaction is a completed payment towards an order
// that has not been applied yet.
func (t *Transaction) IsApplicable() bool {
	return t.kind == KindPayment && t.status == StatusCompleted && t.orderID != nil && t.appliedAt == nil
}

// CanBeReadBy reports whether the actor is a party of the transaction or an admin.
func (t *Transaction) CanBeReadBy(actor kernel.Actor) bool {
	return actor.IsAdmin() || actor.Is(t.buyerID) || actor.Is(t.sellerID)
}

// MarkApplied records that the amount has been added to the order.
func (t *Transaction) MarkApplied(at time.Time) error {
	if !t.IsApplicable() {
		return errs.NewInvalidStateError("transaction "+t.number, t.status, "apply")
	}
	t.appliedAt = &at
	return nil
}

// MarkFailed turns a completed but unapplicable payment into a failed one. Used when the
// order can no longer take the amount, e.g. it was cancelled between the two steps.
func (t *Transaction) MarkFailed(reason string) error {
	if !t.IsApplicable() {
		return errs.NewInvalidStateError("transaction "+t.number, t.status, "fail")
	}
	t.status = StatusFailed
	if reason != "" {
		if t.description == "" {
			t.description = reason
		} else {
			t.description = t.description + " (" + reason + ")"
		}
	}
	return nil
}

func (t *Transaction) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("transactionId")
	}
	t.number = number
	return nil
}

func (t *Transaction) setOrder(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	t.orderID = &id
	return nil
}

func (t *Transaction) setParties(buyerID, sellerID kernel.UUID) error {
	if err := errors.Join(buyerID.Validate(), sellerID.Validate()); err != nil {
		return err
	}
	t.buyerID = buyerID
	t.sellerID = sellerID
	return nil
}

func (t *Transaction) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	t.amount = amount
	return nil
}

func (t *Transaction) setMethod(method Method) error {
	parsed, err := ParseMethod(string(method))
	if err != nil {
		return err
	}
	t.method = parsed
	return nil
}
