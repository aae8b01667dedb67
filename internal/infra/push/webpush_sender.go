// Package push implements notification delivery over the browser push
// protocol and FCM.
package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"
)

const defaultTTLSeconds = 86400

// webPushSender delivers notifications over the Web Push protocol with
// VAPID authentication.
type webPushSender struct {
	publicKey  string
	privateKey string
	subscriber string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebPushSender is the constructor for webPushSender.
func NewWebPushSender(cfg *config.Config, logger *slog.Logger) (service.PushSender, error) {
	if cfg.Push == nil {
		return nil, errors.New("push configuration is missing")
	}
	if strings.TrimSpace(cfg.Push.VAPIDPublicKey) == "" || strings.TrimSpace(cfg.Push.VAPIDPrivateKey) == "" {
		return nil, errors.New("VAPID key pair is missing")
	}

	return &webPushSender{
		publicKey:  cfg.Push.VAPIDPublicKey,
		privateKey: cfg.Push.VAPIDPrivateKey,
		subscriber: cfg.Push.Subscriber,
		httpClient: &http.Client{
			Timeout: cfg.Push.SendTimeout,
		},
		logger: logger,
	}, nil
}

// Send delivers the payload to one browser endpoint. A 404 or 410 from
// the push service means the browser dropped the subscription.
func (s *webPushSender) Send(ctx context.Context, subscription *entity.PushSubscription, payload *service.PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	target := &webpush.Subscription{
		Endpoint: subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: subscription.P256dh,
			Auth:   subscription.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, target, &webpush.Options{
		HTTPClient:      s.httpClient,
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             defaultTTLSeconds,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send web push notification")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return service.ErrSubscriptionGone
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		s.logger.Warn("Push service rejected notification",
			slog.Int("status", resp.StatusCode),
			slog.String("endpoint", subscription.Endpoint),
		)

		return errors.Errorf("push service returned status %d", resp.StatusCode)
	}

	return nil
}
