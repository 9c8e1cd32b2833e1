package ports

import (
	"context"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transaction"
)

// TransactionRepository defines the persistence contract for transactions.
// Transactions are append-only; Update only stamps appliedAt or marks a failure.
type TransactionRepository interface {
	Add(ctx context.Context, aggregate *transaction.Transaction) error
	Update(ctx context.Context, aggregate *transaction.Transaction) error
	Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error)

	// GetForUpdate retrieves a transaction and locks its row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error)

	// SumUnapplied returns the total of completed payments for the order that have not
	// been applied to it yet.
	SumUnapplied(ctx context.Context, orderID kernel.UUID) (kernel.Money, error)

	// ListUnapplied returns up to limit identifiers of completed, unapplied payments,
	// oldest first.
	ListUnapplied(ctx context.Context, limit int) ([]kernel.UUID, error)
}
