// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"barbershop/config"
	"barbershop/internal/domain/service"
)

// Validation errors returned by ValidateToken.
var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingUser  = errors.New("token carries no usable subject claim")
)

// jwtService validates access tokens minted by the external auth
// platform (HS256 with a shared secret). The service never issues
// tokens itself; sign-in, refresh, and revocation live on the platform.
type jwtService struct {
	secret string
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth jwt secret must be provided")
	}

	return &jwtService{secret: cfg.Auth.JWTSecret}, nil
}

// ValidateToken checks the token signature and expiry and extracts the
// session claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrMissingUser
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrMissingUser
	}

	email, _ := claims["email"].(string)

	return &service.SessionClaims{
		UserID: userID,
		Email:  email,
	}, nil
}
