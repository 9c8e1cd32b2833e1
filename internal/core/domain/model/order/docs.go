// Package order provides the purchase order aggregate of the produce marketplace and
// the rules that govern its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding parties, terms, amounts and timestamps
//   - Status: the primary state machine (pending, accepted, ..., delivered, cancelled)
//   - PaymentStatus: the secondary status, always derived from amountPaid and totalAmount
//   - Unit and Quality: value types describing what is being bought
//
// Key business rules:
//   - Only the buyer creates and edits an order, and only while it is pending
//   - Only the seller accepts or rejects, and only from pending
//   - Payments accumulate up to the total and never beyond it
//   - Transport progress is mirrored into the order status
//   - Status never moves backwards; cancelled is reachable from any non-terminal status
package order
