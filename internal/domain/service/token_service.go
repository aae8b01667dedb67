package service

import (
	"github.com/google/uuid"
)

// SessionClaims is the subset of the auth platform's access-token claims
// the application cares about.
type SessionClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService validates access tokens issued by the external auth
// platform. Token issuance, refresh, and revocation stay with the
// platform; only verification lives here.
type TokenService interface {
	// ValidateToken checks the token signature and expiry and extracts
	// the session claims.
	ValidateToken(tokenString string) (*SessionClaims, error)
}
