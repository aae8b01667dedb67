package entity

import (
	"time"

	"github.com/google/uuid"
)

// PushProvider selects the delivery channel for a subscription row.
type PushProvider string

const (
	// ProviderWebPush rows hold a browser push endpoint plus VAPID keys.
	ProviderWebPush PushProvider = "webpush"
	// ProviderFCM rows hold a Firebase registration token in the
	// endpoint column; the key columns stay empty.
	ProviderFCM PushProvider = "fcm"
)

// PushSubscription is one browser (or FCM) push target, keyed by
// endpoint. Saving the same endpoint again replaces the old record.
type PushSubscription struct {
	ID        int64        `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Endpoint  string       `json:"endpoint"`
	P256dh    string       `json:"p256dh"`
	Auth      string       `json:"auth"`
	Provider  PushProvider `json:"provider"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
