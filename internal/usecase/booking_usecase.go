// Package usecase defines the application-facing interfaces implemented
// under impl.
package usecase

import (
	"context"
	"encoding/json"

	"barbershop/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingEvent is the provider-agnostic ingestion input, assembled by
// the webhook handlers.
type BookingEvent struct {
	// CalEventUID is the external scheduler's event id. Optional; a
	// fresh uid is generated when absent.
	CalEventUID string

	// Title is the raw booking title used for service matching and kept
	// verbatim as the appointment's service name.
	Title string

	// StartTime carries the raw JSON value as delivered by the provider;
	// format detection happens during ingestion.
	StartTime json.RawMessage

	// EndTime is optional.
	EndTime json.RawMessage

	// UserID is the explicit attendee id when the provider supplies one.
	UserID uuid.UUID

	// AttendeeEmail resolves the user when UserID is absent.
	AttendeeEmail string

	// Payment fields are populated on the checkout path only.
	PaymentStatus   string
	StripeSessionID string
	AmountPaid      float64
}

// BookingUsecase ingests external booking events into local appointments.
type BookingUsecase interface {
	// Ingest creates a confirmed appointment from the event. A replay of
	// an already-ingested event uid returns the existing appointment
	// with created=false and no error.
	Ingest(ctx context.Context, event *BookingEvent) (appointment *entity.Appointment, created bool, err error)

	// CancelByEventUID marks the local appointment for a
	// scheduler-originated cancellation; no outbound call is made.
	CancelByEventUID(ctx context.Context, calEventUID string) error
}
