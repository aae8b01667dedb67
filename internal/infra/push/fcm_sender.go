package push

import (
	"context"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// fcmSender delivers notifications through Firebase Cloud Messaging for
// subscriptions whose endpoint column holds a registration token.
type fcmSender struct {
	client *messaging.Client
}

// NewFCMSender is the constructor for fcmSender.
func NewFCMSender(ctx context.Context, cfg *config.Config) (service.PushSender, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase configuration is missing")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &fcmSender{
		client: client,
	}, nil
}

// Send delivers the payload to one registration token. An unregistered
// or invalid token means the device dropped the subscription.
func (s *fcmSender) Send(ctx context.Context, subscription *entity.PushSubscription, payload *service.PushPayload) error {
	message := &messaging.Message{
		Token: subscription.Endpoint,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
	}
	if payload.URL != "" {
		message.Data = map[string]string{"url": payload.URL}
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return service.ErrSubscriptionGone
		}

		return errors.Wrap(err, "failed to send FCM notification")
	}

	return nil
}
