package handler

import (
	"log/slog"
	"net/http"

	"barbershop/internal/delivery/http/response"
	"barbershop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookingHandlerParams holds dependencies for BookingHandler, injected by Fx.
type BookingHandlerParams struct {
	fx.In

	AppointmentUC usecase.AppointmentUsecase
	Logger        *slog.Logger
}

// BookingHandler proxies booking cancellations to the external scheduler.
type BookingHandler struct {
	appointmentUC usecase.AppointmentUsecase
	logger        *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler.
func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		appointmentUC: params.AppointmentUC,
		logger:        params.Logger,
	}
}

// CancelRequest represents the request body for cancelling a booking.
type CancelRequest struct {
	CalEventUID string `json:"calEventUid"`
}

// Cancel forwards the cancellation to the scheduler under the caller's
// API key; an invalid key is rejected upstream. The local row is updated
// later by the scheduler's own cancellation webhook.
func (h *BookingHandler) Cancel(c echo.Context) error {
	apiKey := c.Request().Header.Get("apikey")
	if apiKey == "" {
		return response.Unauthorized(c, "MISSING_API_KEY", "API key is required")
	}

	var req CancelRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cancel input")
	}
	if req.CalEventUID == "" {
		return response.BadRequest(c, "MISSING_EVENT_UID", "Cal.com event UID is required")
	}

	if err := h.appointmentUC.CancelExternal(c.Request().Context(), req.CalEventUID, apiKey); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"success": true}, "Booking cancelled")
}
