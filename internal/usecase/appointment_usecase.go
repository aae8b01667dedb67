package usecase

import (
	"context"

	"barbershop/internal/domain/repository"
)

// AppointmentUsecase covers the management operations on stored
// appointments.
type AppointmentUsecase interface {
	// ListUpcoming retrieves appointments from today onward joined with
	// their catalog entry and owner profile.
	ListUpcoming(ctx context.Context) ([]*repository.AppointmentWithDetails, error)

	// Complete transitions a confirmed appointment to completed. Local
	// only; no outbound call.
	Complete(ctx context.Context, id int64) error

	// Cancel cancels a confirmed appointment. When the appointment has
	// an external event uid the scheduler is called first; an upstream
	// failure leaves the local row untouched.
	Cancel(ctx context.Context, id int64) error

	// CancelExternal proxies a cancellation straight to the scheduler,
	// authenticating with the caller's own API key so the provider
	// decides whether the caller may cancel. Local state is untouched;
	// the scheduler's cancellation webhook reports the result back.
	CancelExternal(ctx context.Context, calEventUID, apiKey string) error
}
