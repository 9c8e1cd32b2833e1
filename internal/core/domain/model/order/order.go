package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Quality describes what the buyer expects of the produce.
type Quality struct {
	Description  string
	Requirements string
}

// Terms are the negotiable parts of an order: what, how much and at which price.
type Terms struct {
	Quantity     decimal.Decimal
	Unit         Unit
	PricePerUnit kernel.Money
	Quality      Quality
	Notes        string
}

// Changes is a partial update of Terms. Nil fields are left untouched.
type Changes struct {
	Quantity     *decimal.Decimal
	Unit         *Unit
	PricePerUnit *kernel.Money
	Quality      *Quality
	Notes        *string
}

// Order is a purchase order between a buyer and a seller for one listing. It is the
// aggregate root that owns the order status, the derived payment status and the amounts.
//
// Order follows these invariants:
//   - totalAmount = quantity x pricePerUnit, frozen once the order leaves Pending
//   - amountPaid never exceeds totalAmount
//   - paymentStatus is always DerivePaymentStatus(amountPaid, totalAmount)
//   - status only moves along the transition table in status.go
type Order struct {
	id        kernel.UUID
	number    string
	buyerID   kernel.UUID
	sellerID  kernel.UUID
	listingID kernel.UUID

	quantity     decimal.Decimal
	unit         Unit
	pricePerUnit kernel.Money
	totalAmount  kernel.Money
	amountPaid   kernel.Money

	status        Status
	paymentStatus PaymentStatus

	quality     Quality
	buyerNotes  string
	sellerNotes string

	createdAt            time.Time
	updatedAt            time.Time
	acceptedAt           *time.Time
	rejectedAt           *time.Time
	cancelledAt          *time.Time
	expectedDeliveryDate *time.Time
	deliveryDate         *time.Time

	isConstructed bool
}

// NewOrder creates a pending order. The total is computed from the terms.
//
// Parameters:
//   - id: order identifier
//   - number: human readable "PO-..." number (see kernel.NewDocumentNumber)
//   - buyerID, sellerID, listingID: the parties and the listing being bought
//   - terms: quantity (> 0), unit, price per unit (> 0), quality and buyer notes
//   - at: creation instant
//
// Example:
//
//	price, _ := kernel.NewPositiveMoney(decimal.NewFromInt(20))
//	o, err := order.NewOrder(kernel.NewUUID(), "PO-1700000000000-1", buyerID, sellerID, listingID,
//	    order.Terms{Quantity: decimal.NewFromInt(50), Unit: order.UnitKg, PricePerUnit: price}, time.Now())
//	// o.TotalAmount().String() == "1000.00"
func NewOrder(
	id kernel.UUID,
	number string,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	listingID kernel.UUID,
	terms Terms,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentStatusPending,
		amountPaid:    kernel.ZeroMoney(),
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(buyerID, sellerID, listingID),
		o.setQuantity(terms.Quantity),
		o.setUnit(terms.Unit),
		o.setPrice(terms.PricePerUnit),
	); err != nil {
		return nil, err
	}

	o.quality = terms.Quality
	o.buyerNotes = terms.Notes
	o.totalAmount = o.pricePerUnit.MulQuantity(o.quantity)

	return o, nil
}

// State is the full persisted state of an order, used by repositories to restore it.
type State struct {
	ID                   kernel.UUID
	Number               string
	BuyerID              kernel.UUID
	SellerID             kernel.UUID
	ListingID            kernel.UUID
	Quantity             decimal.Decimal
	Unit                 Unit
	PricePerUnit         kernel.Money
	TotalAmount          kernel.Money
	AmountPaid           kernel.Money
	Status               Status
	PaymentStatus        PaymentStatus
	Quality              Quality
	BuyerNotes           string
	SellerNotes          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	AcceptedAt           *time.Time
	RejectedAt           *time.Time
	CancelledAt          *time.Time
	ExpectedDeliveryDate *time.Time
	DeliveryDate         *time.Time
}

// RestoreOrder rebuilds an order from persisted state. The stored payment status is kept
// as is so the refunded exception path survives a round trip.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		totalAmount:          s.TotalAmount,
		amountPaid:           s.AmountPaid,
		status:               s.Status,
		paymentStatus:        s.PaymentStatus,
		quality:              s.Quality,
		buyerNotes:           s.BuyerNotes,
		sellerNotes:          s.SellerNotes,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		acceptedAt:           s.AcceptedAt,
		rejectedAt:           s.RejectedAt,
		cancelledAt:          s.CancelledAt,
		expectedDeliveryDate: s.ExpectedDeliveryDate,
		deliveryDate:         s.DeliveryDate,
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setParties(s.BuyerID, s.SellerID, s.ListingID),
		o.setQuantity(s.Quantity),
		o.setUnit(s.Unit),
		o.setPrice(s.PricePerUnit),
		s.Status.Validate(),
		s.TotalAmount.Validate(),
		s.AmountPaid.Validate(),
	); err != nil {
		return nil, err
	}

	if s.AmountPaid.Cmp(s.TotalAmount) > 0 {
		return nil, errs.NewOverpaymentError(s.AmountPaid, s.TotalAmount)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                  { return o.id }
func (o *Order) Number() string                   { return o.number }
func (o *Order) BuyerID() kernel.UUID             { return o.buyerID }
func (o *Order) SellerID() kernel.UUID            { return o.sellerID }
func (o *Order) ListingID() kernel.UUID           { return o.listingID }
func (o *Order) Quantity() decimal.Decimal        { return o.quantity }
func (o *Order) Unit() Unit                       { return o.unit }
func (o *Order) PricePerUnit() kernel.Money       { return o.pricePerUnit }
func (o *Order) TotalAmount() kernel.Money        { return o.totalAmount }
func (o *Order) AmountPaid() kernel.Money         { return o.amountPaid }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) PaymentStatus() PaymentStatus     { return o.paymentStatus }
func (o *Order) Quality() Quality                 { return o.quality }
func (o *Order) BuyerNotes() string               { return o.buyerNotes }
func (o *Order) SellerNotes() string              { return o.sellerNotes }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
func (o *Order) AcceptedAt() *time.Time           { return o.acceptedAt }
func (o *Order) RejectedAt() *time.Time           { return o.rejectedAt }
func (o *Order) CancelledAt() *time.Time          { return o.cancelledAt }
func (o *Order) ExpectedDeliveryDate() *time.Time { return o.expectedDeliveryDate }
func (o *Order) DeliveryDate() *time.Time         { return o.deliveryDate }

// Outstanding returns totalAmount - amountPaid.
func (o *Order) Outstanding() kernel.Money {
	outstanding, err := o.totalAmount.Sub(o.amountPaid)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return outstanding
}

// IsParty reports whether the actor is the buyer or the seller of the order.
func (o *Order) IsParty(actor kernel.Actor) bool {
	return actor.Is(o.buyerID) || actor.Is(o.sellerID)
}

// CanBeReadBy reports whether the actor may see the order: a party or an admin.
func (o *Order) CanBeReadBy(actor kernel.Actor) bool {
	return actor.IsAdmin() || o.IsParty(actor)
}

// Update changes the terms of a pending order on behalf of its buyer and recomputes the
// total when quantity or price change.
//
// Returns:
//   - UnauthorizedError when the actor is not the buyer
//   - InvalidStateError when the order is no longer pending
//   - OverpaymentError when the new total would fall below amountPaid
//   - validation errors for non-positive quantity or price
//
// The order is left untouched when an error is returned.
func (o *Order) Update(actor kernel.Actor, changes Changes, at time.Time) error {
	if !actor.Is(o.buyerID) {
		return errs.NewUnauthorizedError(actor.ID(), "update order "+o.number)
	}
	if o.status != Pending {
		return errs.NewInvalidStateError("order", o.status, "update")
	}

	next := *o
	if changes.Quantity != nil {
		if err := next.setQuantity(*changes.Quantity); err != nil {
			return err
		}
	}
	if changes.Unit != nil {
		if err := next.setUnit(*changes.Unit); err != nil {
			return err
		}
	}
	if changes.PricePerUnit != nil {
		if err := next.setPrice(*changes.PricePerUnit); err != nil {
			return err
		}
	}
	if changes.Quality != nil {
		next.quality = *changes.Quality
	}
	if changes.Notes != nil {
		next.buyerNotes = *changes.Notes
	}

	next.totalAmount = next.pricePerUnit.MulQuantity(next.quantity)
	if next.amountPaid.Cmp(next.totalAmount) > 0 {
		return errs.NewOverpaymentError(next.amountPaid, next.totalAmount)
	}
	next.paymentStatus = DerivePaymentStatus(next.amountPaid, next.totalAmount)
	next.updatedAt = at

	*o = next
	return nil
}

// Accept records the seller's agreement. Only the order's seller may accept, and only
// while the order is pending. Notes, when given, replace the seller notes.
func (o *Order) Accept(actor kernel.Actor, notes string, at time.Time) error {
	if !actor.Is(o.sellerID) {
		return errs.NewUnauthorizedError(actor.ID(), "accept order "+o.number)
	}
	if o.status != Pending {
		return errs.NewInvalidStateError("order", o.status, "accept")
	}

	if err := o.moveTo(Accepted, at); err != nil {
		return err
	}
	if notes != "" {
		o.sellerNotes = notes
	}
	o.acceptedAt = &at
	return nil
}

// Reject records the seller's refusal. The reason is kept in the seller notes.
func (o *Order) Reject(actor kernel.Actor, reason string, at time.Time) error {
	if !actor.Is(o.sellerID) {
		return errs.NewUnauthorizedError(actor.ID(), "reject order "+o.number)
	}
	if o.status != Pending {
		return errs.NewInvalidStateError("order", o.status, "reject")
	}

	if err := o.moveTo(Rejected, at); err != nil {
		return err
	}
	o.sellerNotes = reason
	o.rejectedAt = &at
	return nil
}

// Cancel withdraws the order. Either party may cancel while the order is not terminal.
// The reason is appended to the canceller's notes.
func (o *Order) Cancel(actor kernel.Actor, reason string, at time.Time) error {
	if !o.IsParty(actor) {
		return errs.NewUnauthorizedError(actor.ID(), "cancel order "+o.number)
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status, "cancel")
	}

	if err := o.moveTo(Cancelled, at); err != nil {
		return err
	}
	if reason != "" {
		note := "Cancelled: " + reason
		if actor.Is(o.buyerID) {
			o.buyerNotes = appendNote(o.buyerNotes, note)
		} else {
			o.sellerNotes = appendNote(o.sellerNotes, note)
		}
	}
	o.cancelledAt = &at
	return nil
}

// CheckPayment verifies that the order takes payments and that amount still fits into
// it, counting payments that are recorded but not yet applied.
//
// Returns:
//   - InvalidStateError when the order was not accepted yet or is finished
//   - OverpaymentError when amountPaid + unapplied + amount > totalAmount
func (o *Order) CheckPayment(amount kernel.Money, unapplied kernel.Money) error {
	if !o.AcceptsPayments() {
		return errs.NewInvalidStateError("order", o.status, "accept payment")
	}

	outstanding, err := o.Outstanding().Sub(unapplied)
	if err != nil {
		return errs.NewOverpaymentError(amount, kernel.ZeroMoney())
	}
	if amount.Cmp(outstanding) > 0 {
		return errs.NewOverpaymentError(amount, outstanding)
	}
	return nil
}

// AcceptsPayments reports whether the seller accepted the order and it is not finished.
func (o *Order) AcceptsPayments() bool {
	return o.status.IsAfter(Pending) && !o.status.IsTerminal()
}

// ApplyPayment adds amount to amountPaid and re-derives the payment status.
//
// When the payment completes the order, Accepted and PaymentPending orders move to
// PaymentConfirmed. A partial payment moves an Accepted order to PaymentPending.
// Orders further along are not moved.
//
// Example:
//
//	// total 1000.00, Accepted
//	_ = o.ApplyPayment(money(600), now) // partial, PaymentPending
//	_ = o.ApplyPayment(money(400), now) // completed, PaymentConfirmed
//	err := o.ApplyPayment(money(1), now) // OverpaymentError, amountPaid stays 1000.00
func (o *Order) ApplyPayment(amount kernel.Money, at time.Time) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if err := o.CheckPayment(amount, kernel.ZeroMoney()); err != nil {
		return err
	}

	o.amountPaid = o.amountPaid.Add(amount)
	o.paymentStatus = DerivePaymentStatus(o.amountPaid, o.totalAmount)

	switch {
	case o.paymentStatus == PaymentStatusCompleted && (o.status == Accepted || o.status == PaymentPending):
		o.status = PaymentConfirmed
	case o.paymentStatus == PaymentStatusPartial && o.status == Accepted:
		o.status = PaymentPending
	}

	o.updatedAt = at
	return nil
}

// MarkReadyForDelivery moves the order to ReadyForDelivery once a transport leg has
// been scheduled and records when it is expected to arrive.
func (o *Order) MarkReadyForDelivery(expected time.Time, at time.Time) error {
	if err := o.ApplyTransportStatus(ReadyForDelivery, at); err != nil {
		return err
	}
	o.expectedDeliveryDate = &expected
	return nil
}

// ApplyTransportStatus mirrors the progress of the transport leg into the order.
// Only ReadyForDelivery, InTransit and Delivered can be mirrored; mirroring the current
// status again is a no-op.
//
// Delivered stamps the delivery date and settles the balance, so the payment status
// becomes completed.
func (o *Order) ApplyTransportStatus(next Status, at time.Time) error {
	if next != ReadyForDelivery && next != InTransit && next != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not driven by transport", next))
	}
	if o.status == next {
		return nil
	}
	if !o.status.CanTransitionTo(next) {
		return errs.NewInvalidStateError("order", o.status, "move to "+next.String())
	}

	if err := o.moveTo(next, at); err != nil {
		return err
	}

	if next == Delivered {
		o.deliveryDate = &at
		o.amountPaid = o.totalAmount
		o.paymentStatus = DerivePaymentStatus(o.amountPaid, o.totalAmount)
	}
	return nil
}

func (o *Order) moveTo(next Status, at time.Time) error {
	status, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = status
	o.updatedAt = at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setParties(buyerID, sellerID, listingID kernel.UUID) error {
	if err := errors.Join(buyerID.Validate(), sellerID.Validate(), listingID.Validate()); err != nil {
		return err
	}
	if buyerID.IsEqual(sellerID) {
		return errs.NewValueIsInvalidErrorWithCause("seller", errors.New("buyer and seller must differ"))
	}
	o.buyerID = buyerID
	o.sellerID = sellerID
	o.listingID = listingID
	return nil
}

func (o *Order) setQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%s is not greater than 0", quantity.String()))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setUnit(unit Unit) error {
	parsed, err := ParseUnit(string(unit))
	if err != nil {
		return err
	}
	o.unit = parsed
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"pricePerUnit", fmt.Errorf("%s is not greater than 0", price))
	}
	o.pricePerUnit = price
	return nil
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}
