package main

import (
	"context"
	"log/slog"
	"os"

	"barbershop/config"
	"barbershop/internal/delivery"
	"barbershop/internal/delivery/http"
	"barbershop/internal/delivery/http/middleware"
	"barbershop/internal/delivery/http/router/handler"
	"barbershop/internal/infra/auth"
	logs "barbershop/internal/infra/log"
	"barbershop/internal/infra/mail"
	"barbershop/internal/infra/persistence/postgres"
	"barbershop/internal/infra/push"
	"barbershop/internal/infra/scheduler"
	"barbershop/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAppointmentRepository,
			postgres.NewServiceRepository,
			postgres.NewProfileRepository,
			postgres.NewPushSubscriptionRepository,
			postgres.NewAdminRepository,
			postgres.NewContactMessageRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			scheduler.NewCalComClient,
			push.NewSender,
			mail.NewResendMailer,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewBookingService,
			impl.NewAppointmentService,
			impl.NewReminderService,
			impl.NewSubscriptionService,
			impl.NewProfileService,
			impl.NewContactService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewWebhookHandler,
			handler.NewBookingHandler,
			handler.NewAppointmentHandler,
			handler.NewPushHandler,
			handler.NewContactHandler,
			handler.NewProfileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
