// Package handler contains the HTTP handlers for the reminder worker.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "barbershop/internal/delivery/context"
	"barbershop/internal/delivery/http/response"
	"barbershop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReminderHandlerParams holds dependencies for the reminder handler.
type ReminderHandlerParams struct {
	fx.In

	ReminderUC usecase.ReminderUsecase
	Logger     *slog.Logger
}

// ReminderHandler exposes the reminder sweep as an HTTP job endpoint,
// triggered by an external scheduler (e.g. Cloud Scheduler or cron).
type ReminderHandler struct {
	reminderUC usecase.ReminderUsecase
	logger     *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(params ReminderHandlerParams) *ReminderHandler {
	return &ReminderHandler{
		reminderUC: params.ReminderUC,
		logger:     params.Logger,
	}
}

// HandleRun executes one reminder sweep and reports how many
// appointments were notified.
func (h *ReminderHandler) HandleRun(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.Logger(ctx, h.logger)

	result, err := h.reminderUC.Run(ctx, time.Now())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	logger.Info("Reminder sweep finished",
		slog.Int("sent", result.Sent),
		slog.Int("total", result.Total),
	)

	return response.Success(c, http.StatusOK, result, "reminder sweep completed")
}
