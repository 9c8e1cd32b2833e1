package ports

import (
	"context"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
)

// TransportRepository defines the persistence contract for transport legs.
type TransportRepository interface {
	// Add persists a new leg. Returns a ConflictError when the order already has one.
	Add(ctx context.Context, aggregate *transport.Transport) error
	Update(ctx context.Context, aggregate *transport.Transport) error
	Get(ctx context.Context, id kernel.UUID) (*transport.Transport, error)

	// GetForUpdate retrieves a leg and locks its row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Transport, error)

	// GetByOrder retrieves the leg of an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*transport.Transport, error)

	// ExistsForOrder reports whether a leg has been scheduled for the order.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
