package service

import (
	"context"

	"barbershop/internal/domain/entity"
	"barbershop/internal/errors"
)

// ErrSubscriptionGone is returned when the push endpoint reports the
// subscription no longer exists (HTTP 404/410 for web push, an
// unregistered token for FCM). Callers should prune the stored row.
var ErrSubscriptionGone = errors.New("push subscription gone")

// PushPayload is the notification body shown by the service worker.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// PushSender delivers one notification to one subscription.
type PushSender interface {
	// Send delivers the payload. Failures affect only this subscription;
	// callers treat sends as fire-and-forget per target.
	Send(ctx context.Context, subscription *entity.PushSubscription, payload *PushPayload) error
}
