package impl

import (
	"context"
	"log/slog"
	"time"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type subscriptionService struct {
	subscriptionRepo repository.PushSubscriptionRepository
	sender           service.PushSender
	vapidPublicKey   string
	sendTimeout      time.Duration
	logger           *slog.Logger
}

// NewSubscriptionService creates a new push subscription service instance.
func NewSubscriptionService(
	subscriptionRepo repository.PushSubscriptionRepository,
	sender service.PushSender,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SubscriptionUsecase {
	var vapidPublicKey string
	sendTimeout := 10 * time.Second
	if cfg.Push != nil {
		vapidPublicKey = cfg.Push.VAPIDPublicKey
		if cfg.Push.SendTimeout > 0 {
			sendTimeout = cfg.Push.SendTimeout
		}
	}

	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		sender:           sender,
		vapidPublicKey:   vapidPublicKey,
		sendTimeout:      sendTimeout,
		logger:           logger,
	}
}

// Save upserts the subscription for the user; saving an endpoint that
// already exists replaces the stored record.
func (s *subscriptionService) Save(ctx context.Context, userID uuid.UUID, input *usecase.SubscriptionInput) (*entity.PushSubscription, error) {
	if input == nil || input.Endpoint == "" {
		return nil, domainerrors.ErrInvalidSubscription
	}

	provider := input.Provider
	if provider == "" {
		provider = entity.ProviderWebPush
	}
	if provider == entity.ProviderWebPush && (input.Keys.P256dh == "" || input.Keys.Auth == "") {
		return nil, domainerrors.ErrInvalidSubscription.WrapMessage("missing encryption keys")
	}

	subscription := &entity.PushSubscription{
		UserID:   userID,
		Endpoint: input.Endpoint,
		P256dh:   input.Keys.P256dh,
		Auth:     input.Keys.Auth,
		Provider: provider,
	}

	if err := s.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return nil, err
	}

	s.logger.Info("Push subscription saved",
		slog.String("userID", userID.String()),
		slog.String("provider", string(provider)),
	)

	return subscription, nil
}

// VAPIDPublicKey returns the public key the browser subscribes with.
func (s *subscriptionService) VAPIDPublicKey() string {
	return s.vapidPublicKey
}

// Broadcast delivers the payload to every stored subscription. Each send
// is independent; failures only affect their own target, and gone
// endpoints are pruned.
func (s *subscriptionService) Broadcast(ctx context.Context, payload *service.PushPayload) (*usecase.BroadcastResult, error) {
	subscriptions, err := s.subscriptionRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions for broadcast")
	}

	result := &usecase.BroadcastResult{Total: len(subscriptions)}
	for _, subscription := range subscriptions {
		if s.send(ctx, subscription, payload) {
			result.Sent++
		}
	}

	s.logger.Info("Broadcast finished",
		slog.Int("sent", result.Sent),
		slog.Int("total", result.Total),
	)

	return result, nil
}

func (s *subscriptionService) send(ctx context.Context, subscription *entity.PushSubscription, payload *service.PushPayload) bool {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	err := s.sender.Send(sendCtx, subscription, payload)
	if err == nil {
		return true
	}

	if errors.Is(err, service.ErrSubscriptionGone) {
		if deleteErr := s.subscriptionRepo.DeleteByEndpoint(ctx, subscription.Endpoint); deleteErr != nil &&
			!errors.Is(deleteErr, repository.ErrSubscriptionNotFound) {
			s.logger.Error("Failed to prune gone subscription",
				slog.String("endpoint", subscription.Endpoint),
				slog.String("error", deleteErr.Error()),
			)
		}

		return false
	}

	s.logger.Error("Broadcast delivery failed",
		slog.String("endpoint", subscription.Endpoint),
		slog.String("error", err.Error()),
	)

	return false
}
