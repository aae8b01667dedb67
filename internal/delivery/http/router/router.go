// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"barbershop/internal/delivery/http/middleware"
	"barbershop/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers injected by Fx.
type RouterParams struct {
	fx.In

	WebhookHandler      *handler.WebhookHandler
	BookingHandler      *handler.BookingHandler
	AppointmentHandler  *handler.AppointmentHandler
	PushHandler         *handler.PushHandler
	ContactHandler      *handler.ContactHandler
	ProfileHandler      *handler.ProfileHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Webhooks authenticate through their own signatures, not sessions.
	webhookGroup := api.Group("/webhooks")
	{
		webhookGroup.POST("/cal", r.params.WebhookHandler.HandleCal)
		webhookGroup.POST("/stripe", r.params.WebhookHandler.HandleStripe)
	}

	// Public endpoints behind the per-IP rate limiter.
	publicGroup := api.Group("", r.params.RateLimitMiddleware.Limit)
	{
		publicGroup.POST("/bookings/cancel", r.params.BookingHandler.Cancel)
		publicGroup.POST("/contact", r.params.ContactHandler.Submit)
		publicGroup.GET("/push/vapid-public-key", r.params.PushHandler.VAPIDPublicKey)
	}

	// Authenticated user endpoints.
	userGroup := api.Group("", r.params.AuthMiddleware.Authenticate)
	{
		userGroup.POST("/push/subscriptions", r.params.PushHandler.SaveSubscription)
		userGroup.GET("/user/profile", r.params.ProfileHandler.Get)
	}

	// Admin-only management endpoints.
	adminGroup := api.Group("", r.params.AuthMiddleware.Authenticate, r.params.AuthMiddleware.RequireAdmin)
	{
		adminGroup.GET("/appointments", r.params.AppointmentHandler.List)
		adminGroup.POST("/appointments/:id/complete", r.params.AppointmentHandler.Complete)
		adminGroup.POST("/appointments/:id/cancel", r.params.AppointmentHandler.Cancel)
		adminGroup.POST("/push/broadcast", r.params.PushHandler.Broadcast)
	}
}
