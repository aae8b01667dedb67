package push

import (
	"context"
	"log/slog"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// dispatchSender routes each subscription to the sender matching its
// provider column. The FCM channel stays nil unless Firebase is
// configured.
type dispatchSender struct {
	webPush service.PushSender
	fcm     service.PushSender
}

// NewSender builds the provider-dispatching sender from configuration.
func NewSender(params Params) (service.PushSender, error) {
	webPush, err := NewWebPushSender(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	var fcm service.PushSender
	if params.Config.Firebase != nil {
		fcm, err = NewFCMSender(context.Background(), params.Config)
		if err != nil {
			return nil, err
		}
	}

	return &dispatchSender{
		webPush: webPush,
		fcm:     fcm,
	}, nil
}

// Send routes the payload to the delivery channel for the subscription's
// provider.
func (s *dispatchSender) Send(ctx context.Context, subscription *entity.PushSubscription, payload *service.PushPayload) error {
	switch subscription.Provider {
	case entity.ProviderFCM:
		if s.fcm == nil {
			return errors.New("FCM delivery is not configured")
		}

		return s.fcm.Send(ctx, subscription, payload)
	default:
		return s.webPush.Send(ctx, subscription, payload)
	}
}
