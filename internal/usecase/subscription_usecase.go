package usecase

import (
	"context"

	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"

	"github.com/google/uuid"
)

// SubscriptionInput is the browser's serialized PushSubscription (or an
// FCM registration token).
type SubscriptionInput struct {
	Endpoint string              `json:"endpoint" validate:"required"`
	Keys     SubscriptionKeys    `json:"keys"`
	Provider entity.PushProvider `json:"provider,omitempty"`
}

// SubscriptionKeys holds the browser's encryption keys.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// BroadcastResult reports one broadcast send.
type BroadcastResult struct {
	Sent  int `json:"sent"`
	Total int `json:"total"`
}

// SubscriptionUsecase manages push subscriptions and broadcast sends.
type SubscriptionUsecase interface {
	// Save upserts the subscription for the user; re-saving an endpoint
	// replaces the stored record.
	Save(ctx context.Context, userID uuid.UUID, input *SubscriptionInput) (*entity.PushSubscription, error)

	// VAPIDPublicKey returns the public key the browser subscribes with.
	VAPIDPublicKey() string

	// Broadcast delivers the payload to every stored subscription,
	// fire-and-forget per target, and reports counts.
	Broadcast(ctx context.Context, payload *service.PushPayload) (*BroadcastResult, error)
}
