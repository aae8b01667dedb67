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

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// Get returns the caller's profile, creating the contact row on first
// touch.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	email, _ := middleware.GetUserEmail(c)

	profile, err := h.profileUC.EnsureProfile(c.Request().Context(), &service.SessionClaims{
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}
