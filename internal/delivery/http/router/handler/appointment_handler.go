package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"barbershop/internal/delivery/http/response"
	"barbershop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AppointmentHandlerParams holds dependencies for AppointmentHandler, injected by Fx.
type AppointmentHandlerParams struct {
	fx.In

	AppointmentUC usecase.AppointmentUsecase
	Logger        *slog.Logger
}

// AppointmentHandler serves the admin appointment management endpoints.
type AppointmentHandler struct {
	appointmentUC usecase.AppointmentUsecase
	logger        *slog.Logger
}

// NewAppointmentHandler is the constructor for AppointmentHandler.
func NewAppointmentHandler(params AppointmentHandlerParams) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUC: params.AppointmentUC,
		logger:        params.Logger,
	}
}

// List retrieves upcoming appointments with service and customer details.
func (h *AppointmentHandler) List(c echo.Context) error {
	details, err := h.appointmentUC.ListUpcoming(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, details, "")
}

// Complete marks an appointment completed.
func (h *AppointmentHandler) Complete(c echo.Context) error {
	id, err := parseAppointmentID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid appointment ID")
	}

	if err := h.appointmentUC.Complete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Appointment completed")
}

// Cancel cancels an appointment, propagating to the scheduler first.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	id, err := parseAppointmentID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid appointment ID")
	}

	if err := h.appointmentUC.Cancel(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Appointment cancelled")
}

func parseAppointmentID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
