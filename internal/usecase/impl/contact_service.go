package impl

import (
	"context"
	"log/slog"

	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"
)

type contactService struct {
	contactRepo repository.ContactMessageRepository
	mailer      service.Mailer
	logger      *slog.Logger
}

// NewContactService creates a new contact form service instance.
func NewContactService(
	contactRepo repository.ContactMessageRepository,
	mailer service.Mailer,
	logger *slog.Logger,
) usecase.ContactUsecase {
	return &contactService{
		contactRepo: contactRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// Submit persists the message and emails the shop admin. The stored row
// is the source of truth; a failed email is logged, not surfaced.
func (s *contactService) Submit(ctx context.Context, input *usecase.ContactInput) (*entity.ContactMessage, error) {
	message := &entity.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}

	if err := s.contactRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.mailer.SendContactNotification(ctx, message); err != nil {
		s.logger.Error("Contact notification email failed",
			slog.Int64("messageID", message.ID),
			slog.String("error", err.Error()),
		)
	}

	return message, nil
}
