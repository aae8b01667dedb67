package handler

import (
	"log/slog"
	"net/http"

	"barbershop/internal/delivery/http/middleware"
	"barbershop/internal/delivery/http/response"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PushHandlerParams holds dependencies for PushHandler, injected by Fx.
type PushHandlerParams struct {
	fx.In

	SubscriptionUC usecase.SubscriptionUsecase
	Logger         *slog.Logger
}

// PushHandler serves push subscription management and broadcast sends.
type PushHandler struct {
	subscriptionUC usecase.SubscriptionUsecase
	logger         *slog.Logger
}

// NewPushHandler is the constructor for PushHandler.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		subscriptionUC: params.SubscriptionUC,
		logger:         params.Logger,
	}
}

// SaveSubscription upserts the caller's push subscription.
func (h *PushHandler) SaveSubscription(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req usecase.SubscriptionInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	subscription, err := h.subscriptionUC.Save(c.Request().Context(), userID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, subscription, "Subscription saved")
}

// VAPIDPublicKey returns the key the browser subscribes with.
func (h *PushHandler) VAPIDPublicKey(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"publicKey": h.subscriptionUC.VAPIDPublicKey(),
	}, "")
}

// BroadcastRequest represents the request body for a broadcast send.
type BroadcastRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
	URL   string `json:"url"`
}

// Broadcast sends a notification to every stored subscription.
func (h *PushHandler) Broadcast(c echo.Context) error {
	var req BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid broadcast input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result, err := h.subscriptionUC.Broadcast(c.Request().Context(), &service.PushPayload{
		Title: req.Title,
		Body:  req.Body,
		URL:   req.URL,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Broadcast finished")
}
