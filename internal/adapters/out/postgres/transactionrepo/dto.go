// Package transactionrepo persists financial transactions.
package transactionrepo

import (
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transaction"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDTO is the "transactions" row. applied_at marks payments already added to
// their order; the partial index on it keeps the re-drive scan cheap.
type TransactionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number      string          `gorm:"size:40;not null;uniqueIndex"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	BuyerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"size:16;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method      string          `gorm:"size:16;not null"`
	Status      string          `gorm:"size:16;not null;index"`
	Description string
	Reference   string          `gorm:"size:120"`
	PaymentDate time.Time       `gorm:"not null"`
	AppliedAt   *time.Time      `gorm:"index:idx_transactions_unapplied,where:applied_at IS NULL"`
	CreatedAt   time.Time       `gorm:"autoCreateTime:false;index"`
}

func (TransactionDTO) TableName() string {
	return "transactions"
}

func fromDomain(t *transaction.Transaction) TransactionDTO {
	var orderID *uuid.UUID
	if id := t.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return TransactionDTO{
		ID:          t.ID().Bytes(),
		Number:      t.Number(),
		OrderID:     orderID,
		BuyerID:     t.BuyerID().Bytes(),
		SellerID:    t.SellerID().Bytes(),
		Kind:        t.Kind().String(),
		Amount:      t.Amount().Amount(),
		Method:      t.Method().String(),
		Status:      t.Status().String(),
		Description: t.Description(),
		Reference:   t.Reference(),
		PaymentDate: t.PaymentDate(),
		AppliedAt:   t.AppliedAt(),
		CreatedAt:   t.CreatedAt(),
	}
}

func toDomain(dto TransactionDTO) (*transaction.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return transaction.RestoreTransaction(transaction.State{
		ID:          id,
		Number:      dto.Number,
		OrderID:     orderID,
		BuyerID:     buyerID,
		SellerID:    sellerID,
		Kind:        transaction.Kind(dto.Kind),
		Amount:      amount,
		Method:      transaction.Method(dto.Method),
		Status:      transaction.Status(dto.Status),
		Description: dto.Description,
		Reference:   dto.Reference,
		PaymentDate: dto.PaymentDate,
		AppliedAt:   dto.AppliedAt,
		CreatedAt:   dto.CreatedAt,
	})
}
