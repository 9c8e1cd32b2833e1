// Package transaction models the financial records written against purchase orders.
//
// A payment is recorded in two steps: the Transaction is persisted first, then its amount
// is applied to the order and the transaction is stamped with appliedAt. The stamp lets
// the application step run again safely after a failure.
package transaction
