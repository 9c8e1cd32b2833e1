package transport

import (
	"fmt"
	"slices"

	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/pkg/errs"
)

// Status is the state of a transport leg.
//
//	Pending ──> Scheduled ──> InTransit ──> Delivered
//	   │            │  ▲          │  ▲
//	   │            ▼  │          ▼  │
//	   └──────────> Delayed ─────────┘
//
//	Any non-terminal status ──> Cancelled
//
// Delayed ──> Scheduled is only taken by legs that never departed; Transport enforces it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusDelayed   Status = "delayed"
)

func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusScheduled, StatusCancelled, StatusDelayed},
		StatusScheduled: {StatusInTransit, StatusCancelled, StatusDelayed},
		StatusInTransit: {StatusDelivered, StatusDelayed, StatusCancelled},
		StatusDelayed:   {StatusScheduled, StatusInTransit, StatusCancelled},
	}
}

// ParseStatus converts a name into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusScheduled, StatusInTransit, StatusDelivered, StatusCancelled, StatusDelayed:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid transport status", s))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the leg is finished.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the transition table allows s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(getTransitions()[s], next)
}

// TransitionTo validates s -> next, returning InvalidTransitionError when not allowed.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return "", errs.NewInvalidTransitionError("transport", s, next)
	}
	return next, nil
}

// OrderStatus returns the order status a transport status is mirrored to, if any.
// Only InTransit and Delivered are mirrored; Scheduled is mirrored at scheduling time.
func (s Status) OrderStatus() (order.Status, bool) {
	switch s { //nolint:exhaustive // remaining statuses do not touch the order
	case StatusInTransit:
		return order.InTransit, true
	case StatusDelivered:
		return order.Delivered, true
	default:
		return order.Unknown, false
	}
}
