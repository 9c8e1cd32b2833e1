// Package listingrepo reads crop listings from the marketplace database.
package listingrepo

import (
	"context"
	"errors"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListingDTO is the part of the "listings" table fulfillment reads.
type ListingDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CropName  string          `gorm:"not null"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Unit      string          `gorm:"size:16;not null;default:kg"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time
}

func (ListingDTO) TableName() string {
	return "listings"
}

// GormListingCatalog implements ports.ListingCatalog against the shared database.
type GormListingCatalog struct {
	db *gorm.DB
}

func NewGormListingCatalog(db *gorm.DB) *GormListingCatalog {
	return &GormListingCatalog{db: db}
}

func (c *GormListingCatalog) GetListing(ctx context.Context, id kernel.UUID) (ports.Listing, error) {
	if err := id.Validate(); err != nil {
		return ports.Listing{}, err
	}

	var dto ListingDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Listing{}, errs.NewObjectNotFoundError("listing", id.String())
		}
		return ports.Listing{}, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return ports.Listing{}, err
	}

	return ports.Listing{
		ID:       id,
		SellerID: sellerID,
		CropName: dto.CropName,
		Quantity: dto.Quantity,
		Unit:     dto.Unit,
		Price:    dto.Price,
	}, nil
}
