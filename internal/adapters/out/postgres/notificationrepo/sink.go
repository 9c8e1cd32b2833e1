// Package notificationrepo stores notifications so clients can list them later.
package notificationrepo

import (
	"context"
	"time"

	"farmtrade/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1"`
	Kind         string    `gorm:"size:32;not null"`
	Title        string    `gorm:"not null"`
	Message      string    `gorm:"not null"`
	RelatedID    uuid.UUID `gorm:"type:uuid"`
	RelatedModel string    `gorm:"size:32"`
	ActionURL    string
	Icon         string
	Priority     string    `gorm:"size:16;not null"`
	IsRead       bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false;index:idx_notifications_user_created,priority:2"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormSink implements ports.NotificationSink by inserting rows into "notifications".
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Name() string {
	return "postgres"
}

// Deliver writes the batch in one statement.
func (s *GormSink) Deliver(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, NotificationDTO{
			ID:           n.ID.Bytes(),
			UserID:       n.UserID.Bytes(),
			Kind:         string(n.Kind),
			Title:        n.Title,
			Message:      n.Message,
			RelatedID:    n.RelatedID.Bytes(),
			RelatedModel: n.RelatedModel,
			ActionURL:    n.ActionURL,
			Icon:         n.Icon,
			Priority:     string(n.Priority),
			CreatedAt:    n.CreatedAt,
		})
	}

	return s.db.WithContext(ctx).Create(&dtos).Error
}
