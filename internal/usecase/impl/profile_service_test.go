package impl

import (
	"context"
	"log/slog"
	"testing"

	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_EnsureProfile_Existing(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := NewProfileService(profileRepo, slog.New(slog.DiscardHandler))

	userID := uuid.New()
	existing := &entity.Profile{ID: userID, Email: "jay@example.com", FullName: "Jay"}

	profileRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)

	profile, err := svc.EnsureProfile(context.Background(), &service.SessionClaims{UserID: userID, Email: "jay@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Jay", profile.FullName)
	profileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestProfileService_EnsureProfile_CreatesOnFirstTouch(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := NewProfileService(profileRepo, slog.New(slog.DiscardHandler))

	userID := uuid.New()

	profileRepo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrProfileNotFound)
	profileRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.ID == userID && p.Email == "new@example.com"
	})).Return(nil)

	profile, err := svc.EnsureProfile(context.Background(), &service.SessionClaims{UserID: userID, Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)
	profileRepo.AssertExpectations(t)
}

func TestProfileService_EnsureProfile_NilClaims(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	svc := NewProfileService(profileRepo, slog.New(slog.DiscardHandler))

	_, err := svc.EnsureProfile(context.Background(), nil)
	require.Error(t, err)
}
