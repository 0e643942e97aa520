package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_recipient_read"`
	Type        string         `gorm:"type:varchar(40);not null"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Message     string         `gorm:"type:text;not null"`
	Data        map[string]any `gorm:"type:jsonb;serializer:json"`
	IsRead      bool           `gorm:"not null;default:false;index:idx_notifications_recipient_read"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}
