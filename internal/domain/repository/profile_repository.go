package repository

import (
	"context"

	"barbershop/internal/domain/entity"
	"barbershop/internal/errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the interface for profile-related database
// operations. Profiles mirror identities owned by the external auth
// platform; this layer only reads and lazily creates contact rows.
type ProfileRepository interface {
	// FindByID retrieves a profile by the auth platform's user id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// FindByEmail retrieves a profile by email.
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// Upsert creates the profile or updates its contact fields if the id
	// already exists.
	Upsert(ctx context.Context, profile *entity.Profile) error
}
