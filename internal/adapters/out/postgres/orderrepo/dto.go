// Package orderrepo persists purchase orders.
package orderrepo

import (
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the "orders" row. Statuses are stored by name so that raw queries and
// humans can read them.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number    string    `gorm:"size:40;not null;uniqueIndex"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ListingID uuid.UUID `gorm:"type:uuid;not null"`

	Quantity     decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Unit         string          `gorm:"size:16;not null"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AmountPaid   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	Status        string `gorm:"size:32;not null;index"`
	PaymentStatus string `gorm:"size:16;not null"`

	QualityDescription  string
	QualityRequirements string
	BuyerNotes          string
	SellerNotes         string

	CreatedAt            time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime:false"`
	AcceptedAt           *time.Time
	RejectedAt           *time.Time
	CancelledAt          *time.Time
	ExpectedDeliveryDate *time.Time
	DeliveryDate         *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                   o.ID().Bytes(),
		Number:               o.Number(),
		BuyerID:              o.BuyerID().Bytes(),
		SellerID:             o.SellerID().Bytes(),
		ListingID:            o.ListingID().Bytes(),
		Quantity:             o.Quantity(),
		Unit:                 o.Unit().String(),
		PricePerUnit:         o.PricePerUnit().Amount(),
		TotalAmount:          o.TotalAmount().Amount(),
		AmountPaid:           o.AmountPaid().Amount(),
		Status:               o.Status().String(),
		PaymentStatus:        o.PaymentStatus().String(),
		QualityDescription:   o.Quality().Description,
		QualityRequirements:  o.Quality().Requirements,
		BuyerNotes:           o.BuyerNotes(),
		SellerNotes:          o.SellerNotes(),
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
		AcceptedAt:           o.AcceptedAt(),
		RejectedAt:           o.RejectedAt(),
		CancelledAt:          o.CancelledAt(),
		ExpectedDeliveryDate: o.ExpectedDeliveryDate(),
		DeliveryDate:         o.DeliveryDate(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
	if err != nil {
		return nil, err
	}

	unit, err := order.ParseUnit(dto.Unit)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PricePerUnit)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	paid, err := kernel.NewMoney(dto.AmountPaid)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:                   id,
		Number:               dto.Number,
		BuyerID:              buyerID,
		SellerID:             sellerID,
		ListingID:            listingID,
		Quantity:             dto.Quantity,
		Unit:                 unit,
		PricePerUnit:         price,
		TotalAmount:          total,
		AmountPaid:           paid,
		Status:               status,
		PaymentStatus:        paymentStatus,
		Quality:              order.Quality{Description: dto.QualityDescription, Requirements: dto.QualityRequirements},
		BuyerNotes:           dto.BuyerNotes,
		SellerNotes:          dto.SellerNotes,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
		AcceptedAt:           dto.AcceptedAt,
		RejectedAt:           dto.RejectedAt,
		CancelledAt:          dto.CancelledAt,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		DeliveryDate:         dto.DeliveryDate,
	})
}
