package ports

import (
	"context"

	"farmtrade/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Listing is a seller's offer of a crop, as far as ordering is concerned.
type Listing struct {
	ID       kernel.UUID
	SellerID kernel.UUID
	CropName string
	Quantity decimal.Decimal
	Unit     string
	Price    decimal.Decimal
}

// ListingCatalog looks up listings. Returns ObjectNotFoundError for unknown ids.
type ListingCatalog interface {
	GetListing(ctx context.Context, id kernel.UUID) (Listing, error)
}
