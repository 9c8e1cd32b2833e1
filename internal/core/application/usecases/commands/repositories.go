// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"farmtrade/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TransactionRepoFactory provides access to the transaction repository within a transaction.
	TransactionRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	// TransportRepoFactory provides access to the transport repository within a transaction.
	TransportRepoFactory interface {
		TransportRepository() ports.TransportRepository
	}

	// SequenceRepoFactory provides access to document sequences within a transaction.
	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		SequenceRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW manages transactions that write transactions and orders together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... check, then add the transaction
	//   err = uow.TransactionRepository().Add(ctx, tx)
	//
	//   err = uow.Commit(ctx)
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		TransactionRepoFactory
		SequenceRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// TransportUoW manages transactions that write transport legs and mirror them into orders.
	TransportUoW interface {
		TxManager
		OrderRepoFactory
		TransportRepoFactory
	}

	// TransportUoWFactory creates new transport unit of work instances.
	TransportUoWFactory interface {
		Create() TransportUoW
	}
)

// SequenceOrders and SequenceTransactions name the document counters.
const (
	SequenceOrders       = "orders"
	SequenceTransactions = "transactions"
)
