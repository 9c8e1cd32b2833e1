package ports

import (
	"context"

	"farmtrade/internal/core/domain/model/kernel"
)

// UserProfile is what fulfillment needs to know about a registered user.
type UserProfile struct {
	ID      kernel.UUID
	Name    string
	Role    kernel.Role
	Address *kernel.Address
}

// ProfileStore reads users and maintains the aggregate counters on their profiles.
type ProfileStore interface {
	// GetUser returns ObjectNotFoundError for unknown ids.
	GetUser(ctx context.Context, id kernel.UUID) (UserProfile, error)

	// IncrementBuyerStats adds to the buyer's totalSpent and totalOrders.
	IncrementBuyerStats(ctx context.Context, buyerID kernel.UUID, spent kernel.Money, orders int) error

	// IncrementSellerStats adds to the farmer's totalEarnings and totalSales.
	IncrementSellerStats(ctx context.Context, sellerID kernel.UUID, earned kernel.Money, sales int) error
}
