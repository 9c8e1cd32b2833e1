package order

import (
	"fmt"
	"slices"

	"farmtrade/internal/pkg/errs"
)

// Status is the primary lifecycle state of a purchase order.
//
// State transitions:
//
//	Pending ──┬──> Accepted ──┬──> PaymentPending ──> PaymentConfirmed ──┐
//	          │               │          │                               │
//	          │               │          └──────────────┐                │
//	          │               └─────────────────────────┴──> ReadyForDelivery ──> InTransit ──> Delivered
//	          └──> Rejected
//
//	Any non-terminal status ──> Cancelled
//
// Rejected, Delivered and Cancelled are terminal. The table in getTransitions is the
// only place that decides whether a move is legal; every write goes through it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status; the seller has not answered yet.
	Pending

	// Accepted means the seller agreed to fulfil the order.
	Accepted

	// Rejected means the seller declined the order. Terminal.
	Rejected

	// PaymentPending means part of the total has been paid.
	PaymentPending

	// PaymentConfirmed means the total has been paid in full.
	PaymentConfirmed

	// ReadyForDelivery means a transport leg has been scheduled.
	ReadyForDelivery

	// InTransit means the produce has left the farm.
	InTransit

	// Delivered means the produce reached the buyer. Terminal.
	Delivered

	// Cancelled means either party withdrew the order. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		Accepted:         "accepted",
		Rejected:         "rejected",
		PaymentPending:   "payment_pending",
		PaymentConfirmed: "payment_confirmed",
		ReadyForDelivery: "ready_for_delivery",
		InTransit:        "in_transit",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// getTransitions returns the authoritative transition table.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing transitions
	return map[Status][]Status{
		Pending:          {Accepted, Rejected, Cancelled},
		Accepted:         {PaymentPending, PaymentConfirmed, ReadyForDelivery, Cancelled},
		PaymentPending:   {PaymentConfirmed, ReadyForDelivery, Cancelled},
		PaymentConfirmed: {ReadyForDelivery, Cancelled},
		ReadyForDelivery: {InTransit, Cancelled},
		InTransit:        {Delivered, Cancelled},
	}
}

// getRanks orders statuses along the lifecycle. Accepted and Rejected share a rank
// because they are alternative answers to the same request.
func getRanks() map[Status]int {
	//nolint:exhaustive // Unknown and Cancelled have no rank
	return map[Status]int{
		Pending:          0,
		Accepted:         1,
		Rejected:         1,
		PaymentPending:   2,
		PaymentConfirmed: 3,
		ReadyForDelivery: 4,
		InTransit:        5,
		Delivered:        6,
	}
}

// ParseStatus converts a persisted or user-supplied name into a Status.
//
// Returns:
//   - Status: the matching status
//   - error: ValueIsInvalidError for unknown names (including "unknown")
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "ready_for_delivery".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(getTransitions()[s], next)
}

// TransitionTo validates s -> next against the transition table.
//
// Returns:
//   - (next, nil) when the move is allowed
//   - (Unknown, InvalidTransitionError) otherwise
//
// Example:
//
//	next, err := order.Pending.TransitionTo(order.Delivered)
//	// err: transition is invalid: order cannot move from pending to delivered
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError("order", s, next)
	}
	return next, nil
}

// IsAfter reports whether s lies strictly later in the lifecycle than other.
// Cancelled and Unknown are never after anything.
func (s Status) IsAfter(other Status) bool {
	sr, ok := getRanks()[s]
	if !ok {
		return false
	}
	or, ok := getRanks()[other]
	if !ok {
		return false
	}
	return sr > or
}
