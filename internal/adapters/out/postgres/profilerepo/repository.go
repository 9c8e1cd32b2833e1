package profilerepo

import (
	"context"
	"errors"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileStore implements ports.ProfileStore. Counters are incremented in SQL so
// concurrent payments never lose an update.
type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) GetUser(ctx context.Context, id kernel.UUID) (ports.UserProfile, error) {
	if err := id.Validate(); err != nil {
		return ports.UserProfile{}, err
	}

	var dto UserDTO
	if err := s.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.UserProfile{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return ports.UserProfile{}, err
	}

	return toProfile(dto)
}

// IncrementBuyerStats creates the buyer profile on first use.
func (s *GormProfileStore) IncrementBuyerStats(
	ctx context.Context, buyerID kernel.UUID, spent kernel.Money, orders int,
) error {
	now := time.Now().UTC()
	dto := BuyerProfileDTO{
		UserID:      buyerID.Bytes(),
		TotalOrders: orders,
		TotalSpent:  spent.Amount(),
		UpdatedAt:   now,
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_orders": gorm.Expr("buyer_profiles.total_orders + ?", orders),
			"total_spent":  gorm.Expr("buyer_profiles.total_spent + ?", spent.Amount()),
			"updated_at":   now,
		}),
	}).Create(&dto).Error
}

// IncrementSellerStats creates the farmer profile on first use.
func (s *GormProfileStore) IncrementSellerStats(
	ctx context.Context, sellerID kernel.UUID, earned kernel.Money, sales int,
) error {
	now := time.Now().UTC()
	dto := FarmerProfileDTO{
		UserID:        sellerID.Bytes(),
		TotalSales:    sales,
		TotalEarnings: earned.Amount(),
		UpdatedAt:     now,
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_sales":    gorm.Expr("farmer_profiles.total_sales + ?", sales),
			"total_earnings": gorm.Expr("farmer_profiles.total_earnings + ?", earned.Amount()),
			"updated_at":     now,
		}),
	}).Create(&dto).Error
}
