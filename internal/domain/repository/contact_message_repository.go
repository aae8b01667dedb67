package repository

import (
	"context"

	"barbershop/internal/domain/entity"
)

// ContactMessageRepository stores contact-form submissions.
type ContactMessageRepository interface {
	// Create persists a new contact message.
	Create(ctx context.Context, message *entity.ContactMessage) error
}
