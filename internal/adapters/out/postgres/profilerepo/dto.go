// Package profilerepo reads users and keeps the buyer and farmer profile counters.
package profilerepo

import (
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserDTO is the part of the "users" table fulfillment reads.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex"`
	Role      string    `gorm:"size:16;not null"`
	Street    string
	City      string
	State     string
	ZipCode   string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

type BuyerProfileDTO struct {
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TotalOrders int             `gorm:"not null;default:0"`
	TotalSpent  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	UpdatedAt   time.Time
}

func (BuyerProfileDTO) TableName() string {
	return "buyer_profiles"
}

type FarmerProfileDTO struct {
	UserID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TotalSales    int             `gorm:"not null;default:0"`
	TotalEarnings decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	UpdatedAt     time.Time
}

func (FarmerProfileDTO) TableName() string {
	return "farmer_profiles"
}

func toProfile(dto UserDTO) (ports.UserProfile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.UserProfile{}, err
	}
	role, err := kernel.ParseRole(dto.Role)
	if err != nil {
		return ports.UserProfile{}, err
	}

	profile := ports.UserProfile{ID: id, Name: dto.Name, Role: role}
	if dto.Street == "" && dto.City == "" && dto.State == "" && dto.ZipCode == "" && dto.Latitude == nil {
		return profile, nil
	}

	point, err := kernel.NewOptionalGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return ports.UserProfile{}, err
	}
	address, err := kernel.NewAddress(dto.Street, dto.City, dto.State, dto.ZipCode, point)
	if err != nil {
		return ports.UserProfile{}, err
	}
	profile.Address = &address
	return profile, nil
}
