package model

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscriptionModel is the GORM-specific struct for the
// 'push_subscriptions' table. The unique index on endpoint backs the
// upsert-on-conflict save semantics.
type PushSubscriptionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint  string    `gorm:"size:1024;not null;uniqueIndex"`
	P256dh    string    `gorm:"size:255"`
	Auth      string    `gorm:"size:255"`
	Provider  string    `gorm:"size:20;not null;default:webpush"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PushSubscriptionModel) TableName() string {
	return "push_subscriptions"
}
