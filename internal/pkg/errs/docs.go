// Package errs provides the error taxonomy shared by the marketplace core.
//
// Validation failures use ValueIsRequiredError, ValueIsInvalidError and ValueIsOutOfRangeError.
// Lookups that find nothing return ObjectNotFoundError. Business-rule failures use
// UnauthorizedError (actor mismatch), InvalidStateError (operation not legal from the current
// state), InvalidTransitionError (status change outside the transition table),
// OverpaymentError and ConflictError (uniqueness).
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrOverpayment)
//   - a struct type with fields for error details
//   - constructor functions, with and without cause where a cause makes sense
//   - an Unwrap method returning the sentinel, so errors.Is works across wrapping
//
// The HTTP adapter maps sentinels to status codes; nothing below it inspects messages.
package errs
