package service

import (
	"context"

	"barbershop/internal/domain/entity"
)

// Mailer sends transactional email through the external provider.
type Mailer interface {
	// SendContactNotification emails the shop admin about a new
	// contact-form submission.
	SendContactNotification(ctx context.Context, message *entity.ContactMessage) error
}
