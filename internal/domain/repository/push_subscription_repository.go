package repository

import (
	"context"

	"barbershop/internal/domain/entity"
	"barbershop/internal/errors"

	"github.com/google/uuid"
)

// ErrSubscriptionNotFound is returned when a push subscription is not found.
var ErrSubscriptionNotFound = errors.New("push subscription not found")

// PushSubscriptionRepository defines the interface for push-subscription
// database operations.
type PushSubscriptionRepository interface {
	// Upsert persists the subscription, replacing any existing row with
	// the same endpoint.
	Upsert(ctx context.Context, subscription *entity.PushSubscription) error

	// FindByUser retrieves all subscriptions owned by a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PushSubscription, error)

	// ListAll retrieves every subscription (broadcast sends).
	ListAll(ctx context.Context) ([]*entity.PushSubscription, error)

	// DeleteByEndpoint removes a subscription by its endpoint. Used to
	// prune rows whose endpoint reports the standard "gone" status.
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}
