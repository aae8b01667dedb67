package usecase

import (
	"context"

	"barbershop/internal/domain/entity"
)

// ContactInput is a contact-form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// ContactUsecase stores contact messages and notifies the shop admin.
type ContactUsecase interface {
	// Submit persists the message and sends the notification email. An
	// email failure after a successful store is logged, not surfaced.
	Submit(ctx context.Context, input *ContactInput) (*entity.ContactMessage, error)
}
