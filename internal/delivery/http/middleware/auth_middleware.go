// Package middleware contains the HTTP middleware for the public API.
package middleware

import (
	"strings"

	"barbershop/internal/delivery/http/response"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID    = "userID"
	contextKeyUserEmail = "userEmail"
)

// AuthMiddleware provides middleware for session verification and admin
// authorization. Tokens are issued by the external auth platform; this
// layer only verifies them.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	adminRepo repository.AdminRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, adminRepo repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:  tokenSvc,
		adminRepo: adminRepo,
	}
}

// Authenticate validates the bearer token and stores the session claims
// on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyUserEmail, claims.Email)

		return next(c)
	}
}

// RequireAdmin checks the session email against the admin allow-list.
// It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, ok := GetUserEmail(c)
		if !ok || email == "" {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: email missing from session")
		}

		isAdmin, err := m.adminRepo.IsAdmin(c.Request().Context(), email)
		if err != nil {
			return response.InternalServerError(c, "INTERNAL_ERROR", "Failed to check permissions")
		}
		if !isAdmin {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: admin access required")
		}

		return next(c)
	}
}

// GetUserID extracts the authenticated user id from the context.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetUserEmail extracts the authenticated user email from the context.
func GetUserEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(contextKeyUserEmail).(string)

	return email, ok
}
