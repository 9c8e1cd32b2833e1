package transactionrepo

import (
	"context"
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransactionRepository implements ports.TransactionRepository using GORM.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransactionRepository {
	return &GormTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTransactionRepository) Add(ctx context.Context, aggregate *transaction.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("transaction", aggregate.Number(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the mutable columns: status, description and applied_at.
func (r *GormTransactionRepository) Update(ctx context.Context, aggregate *transaction.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "description", "applied_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transaction", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormTransactionRepository) GetForUpdate(
	ctx context.Context, id kernel.UUID,
) (*transaction.Transaction, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTransactionRepository) SumUnapplied(ctx context.Context, orderID kernel.UUID) (kernel.Money, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Select("SUM(amount)").
		Where("order_id = ? AND kind = ? AND status = ? AND applied_at IS NULL",
			orderID.Bytes(), transaction.KindPayment.String(), transaction.StatusCompleted.String()).
		Scan(&sum).Error
	if err != nil {
		return kernel.Money{}, err
	}

	if !sum.Valid {
		return kernel.ZeroMoney(), nil
	}
	return kernel.NewMoney(sum.Decimal)
}

func (r *GormTransactionRepository) ListUnapplied(ctx context.Context, limit int) ([]kernel.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("kind = ? AND status = ? AND order_id IS NOT NULL AND applied_at IS NULL",
			transaction.KindPayment.String(), transaction.StatusCompleted.String()).
		Order("created_at").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	result := make([]kernel.UUID, 0, len(ids))
	for _, raw := range ids {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		result = append(result, id)
	}
	return result, nil
}

func (r *GormTransactionRepository) get(db *gorm.DB, id kernel.UUID) (*transaction.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transaction", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
