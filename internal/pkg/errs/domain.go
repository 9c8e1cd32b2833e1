package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is the sentinel for UnauthorizedError.
	ErrUnauthorized = errors.New("actor is not permitted")
	// ErrInvalidState is the sentinel for InvalidStateError.
	ErrInvalidState = errors.New("state is invalid")
	// ErrInvalidTransition is the sentinel for InvalidTransitionError.
	ErrInvalidTransition = errors.New("transition is invalid")
	// ErrOverpayment is the sentinel for OverpaymentError.
	ErrOverpayment = errors.New("payment exceeds outstanding amount")
	// ErrConflict is the sentinel for ConflictError.
	ErrConflict = errors.New("object already exists")
)

// UnauthorizedError reports that an actor tried an operation reserved for someone else.
type UnauthorizedError struct {
	ActorID   any
	Operation string
}

// NewUnauthorizedError creates an UnauthorizedError for the actor and the refused operation.
func NewUnauthorizedError(actorID any, operation string) *UnauthorizedError {
	return &UnauthorizedError{
		ActorID:   actorID,
		Operation: operation,
	}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s", ErrUnauthorized, e.ActorID, e.Operation)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidStateError reports an operation that is not legal from the current state of an object.
type InvalidStateError struct {
	ParamName string
	State     any
	Operation string
}

// NewInvalidStateError creates an InvalidStateError.
//
// Example:
//
//	errs.NewInvalidStateError("order", order.Accepted, "update")
//	// state is invalid: order is accepted, cannot update
func NewInvalidStateError(paramName string, state any, operation string) *InvalidStateError {
	return &InvalidStateError{
		ParamName: paramName,
		State:     state,
		Operation: operation,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s is %s, cannot %s", ErrInvalidState, e.ParamName, e.State, e.Operation)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InvalidTransitionError reports a status change that the transition table does not allow.
type InvalidTransitionError struct {
	ParamName string
	From      any
	To        any
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(paramName string, from any, to any) *InvalidTransitionError {
	return &InvalidTransitionError{
		ParamName: paramName,
		From:      from,
		To:        to,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.ParamName, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// OverpaymentError reports a payment larger than what is still owed.
type OverpaymentError struct {
	Amount      any
	Outstanding any
}

// NewOverpaymentError creates an OverpaymentError.
func NewOverpaymentError(amount any, outstanding any) *OverpaymentError {
	return &OverpaymentError{
		Amount:      amount,
		Outstanding: outstanding,
	}
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("%s: amount is %s, outstanding is %s", ErrOverpayment, e.Amount, e.Outstanding)
}

func (e *OverpaymentError) Unwrap() error {
	return ErrOverpayment
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConflictError creates a ConflictError without a cause.
func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		ID:        id,
	}
}

// NewConflictErrorWithCause creates a ConflictError carrying the underlying cause.
func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s for %s (cause: %v)", ErrConflict, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s for %s", ErrConflict, e.ParamName, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
