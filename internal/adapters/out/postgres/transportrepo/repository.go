package transportrepo

import (
	"context"
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransportRepository implements ports.TransportRepository using GORM.
type GormTransportRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTransportRepository(db *gorm.DB, tracker aggregateTracker) *GormTransportRepository {
	return &GormTransportRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a leg. The unique order_id index turns a second leg into a ConflictError.
func (r *GormTransportRepository) Add(ctx context.Context, aggregate *transport.Transport) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("transport for order", aggregate.OrderID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTransportRepository) Update(ctx context.Context, aggregate *transport.Transport) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TransportDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "order_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transport", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTransportRepository) Get(ctx context.Context, id kernel.UUID) (*transport.Transport, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// GetForUpdate reads the leg with SELECT ... FOR UPDATE.
func (r *GormTransportRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Transport, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *GormTransportRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*transport.Transport, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "order_id = ?", orderID)
}

func (r *GormTransportRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TransportDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTransportRepository) first(db *gorm.DB, where string, id kernel.UUID) (*transport.Transport, error) {
	var dto TransportDTO
	if err := db.First(&dto, where, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transport", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
