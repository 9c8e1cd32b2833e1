// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories bound to a unit of work, and the external collaborators
// (listing catalog, profile store, notification dispatch, metrics).
package ports

import (
	"context"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order. The order number must be unique.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends. Every write to an order must read it this way first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
