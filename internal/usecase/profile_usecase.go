package usecase

import (
	"context"

	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"
)

// ProfileUsecase reads and lazily creates contact profiles for
// authenticated sessions.
type ProfileUsecase interface {
	// EnsureProfile returns the profile for the session, creating the
	// row from the token claims on first touch.
	EnsureProfile(ctx context.Context, claims *service.SessionClaims) (*entity.Profile, error)
}
