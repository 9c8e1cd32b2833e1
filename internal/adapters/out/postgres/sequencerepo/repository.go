// Package sequencerepo hands out gap-tolerant, strictly increasing document numbers.
package sequencerepo

import (
	"context"
	"strings"

	"farmtrade/internal/pkg/errs"

	"gorm.io/gorm"
)

// SequenceDTO is one named counter of the "document_sequences" table.
type SequenceDTO struct {
	Name  string `gorm:"size:40;primaryKey"`
	Value int64  `gorm:"not null"`
}

func (SequenceDTO) TableName() string {
	return "document_sequences"
}

// GormSequenceRepository implements ports.SequenceRepository with an upsert, so
// concurrent callers never receive the same value.
type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

func (r *GormSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, errs.NewValueIsRequiredError("name")
	}

	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_sequences (name, value)
		VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = document_sequences.value + 1
		RETURNING value
	`, name).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}
