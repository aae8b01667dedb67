package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSubscriptionFixture(t *testing.T) (usecase.SubscriptionUsecase, *mockPushSubscriptionRepository, *mockPushSender) {
	t.Helper()

	subscriptionRepo := new(mockPushSubscriptionRepository)
	sender := new(mockPushSender)
	cfg := &config.Config{
		Push: &config.PushConfig{
			VAPIDPublicKey: "test-public-key",
			SendTimeout:    time.Second,
		},
	}

	svc := NewSubscriptionService(subscriptionRepo, sender, cfg, slog.New(slog.DiscardHandler))

	return svc, subscriptionRepo, sender
}

func TestSubscriptionService_Save(t *testing.T) {
	svc, subscriptionRepo, _ := newSubscriptionFixture(t)
	userID := uuid.New()

	subscriptionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *entity.PushSubscription) bool {
		return s.UserID == userID && s.Endpoint == "https://push/1" && s.Provider == entity.ProviderWebPush
	})).Return(nil)

	subscription, err := svc.Save(context.Background(), userID, &usecase.SubscriptionInput{
		Endpoint: "https://push/1",
		Keys:     usecase.SubscriptionKeys{P256dh: "pk", Auth: "auth"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderWebPush, subscription.Provider)
}

func TestSubscriptionService_Save_MissingKeys(t *testing.T) {
	svc, _, _ := newSubscriptionFixture(t)

	_, err := svc.Save(context.Background(), uuid.New(), &usecase.SubscriptionInput{
		Endpoint: "https://push/1",
	})
	require.Error(t, err)
}

func TestSubscriptionService_Save_FCMTokenWithoutKeys(t *testing.T) {
	svc, subscriptionRepo, _ := newSubscriptionFixture(t)
	userID := uuid.New()

	subscriptionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *entity.PushSubscription) bool {
		return s.Provider == entity.ProviderFCM
	})).Return(nil)

	_, err := svc.Save(context.Background(), userID, &usecase.SubscriptionInput{
		Endpoint: "fcm-registration-token",
		Provider: entity.ProviderFCM,
	})
	require.NoError(t, err)
}

func TestSubscriptionService_VAPIDPublicKey(t *testing.T) {
	svc, _, _ := newSubscriptionFixture(t)

	assert.Equal(t, "test-public-key", svc.VAPIDPublicKey())
}

func TestSubscriptionService_Broadcast(t *testing.T) {
	svc, subscriptionRepo, sender := newSubscriptionFixture(t)

	ok := &entity.PushSubscription{Endpoint: "https://push/ok"}
	gone := &entity.PushSubscription{Endpoint: "https://push/gone"}
	failing := &entity.PushSubscription{Endpoint: "https://push/fail"}

	subscriptionRepo.On("ListAll", mock.Anything).
		Return([]*entity.PushSubscription{ok, gone, failing}, nil)
	sender.On("Send", mock.Anything, ok, mock.Anything).Return(nil)
	sender.On("Send", mock.Anything, gone, mock.Anything).Return(service.ErrSubscriptionGone)
	sender.On("Send", mock.Anything, failing, mock.Anything).Return(errors.New("push service down"))
	subscriptionRepo.On("DeleteByEndpoint", mock.Anything, "https://push/gone").Return(nil)

	result, err := svc.Broadcast(context.Background(), &service.PushPayload{Title: "Hello", Body: "World"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 3, result.Total)
	subscriptionRepo.AssertExpectations(t)
}
