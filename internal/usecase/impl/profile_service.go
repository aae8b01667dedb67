package impl

import (
	"context"
	"log/slog"

	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"

	"github.com/pkg/errors"
)

type profileService struct {
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// NewProfileService creates a new profile service instance.
func NewProfileService(profileRepo repository.ProfileRepository, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// EnsureProfile returns the profile for the session, creating the contact
// row from the token claims on first touch.
func (s *profileService) EnsureProfile(ctx context.Context, claims *service.SessionClaims) (*entity.Profile, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	profile, err := s.profileRepo.FindByID(ctx, claims.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	profile = &entity.Profile{
		ID:    claims.UserID,
		Email: claims.Email,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Profile created on first touch",
		slog.String("userID", claims.UserID.String()),
	)

	return profile, nil
}
