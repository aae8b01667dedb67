// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"barbershop/internal/domain/entity"
	"barbershop/internal/errors"
)

// Domain-specific errors for appointment persistence.
var (
	// ErrAppointmentNotFound is returned when an appointment is not found.
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// AppointmentWithDetails bundles an appointment with its joined catalog
// entry and owner profile for the management listing, avoiding N+1 reads.
type AppointmentWithDetails struct {
	Appointment *entity.Appointment
	Service     *entity.Service
	Profile     *entity.Profile
}

// AppointmentRepository defines the interface for appointment-related
// database operations.
type AppointmentRepository interface {
	// CreateIfAbsent inserts the appointment using the unique constraint
	// on cal_event_uid as the de-duplication guard (ON CONFLICT DO
	// NOTHING). It reports whether a row was actually inserted; false
	// means an idempotent replay of an already-ingested event.
	CreateIfAbsent(ctx context.Context, appointment *entity.Appointment) (bool, error)

	// FindByID retrieves an appointment by its internal id.
	FindByID(ctx context.Context, id int64) (*entity.Appointment, error)

	// FindByCalEventUID retrieves an appointment by its external
	// scheduler event id.
	FindByCalEventUID(ctx context.Context, calEventUID string) (*entity.Appointment, error)

	// ListUpcoming retrieves appointments on or after fromDate
	// (YYYY-MM-DD) joined with service and profile details, ordered by
	// date then time.
	ListUpcoming(ctx context.Context, fromDate string) ([]*AppointmentWithDetails, error)

	// UpdateStatusIfCurrent transitions status from expected to next with
	// a compare-and-set guard. It reports whether the row was updated;
	// false means the appointment was not in the expected state.
	UpdateStatusIfCurrent(ctx context.Context, id int64, expected, next entity.AppointmentStatus) (bool, error)

	// CancelByCalEventUID marks the appointment for the given external
	// event id cancelled. Used by scheduler-originated cancellations
	// where no outbound call is needed.
	CancelByCalEventUID(ctx context.Context, calEventUID string) error

	// FindDueDayReminders retrieves confirmed appointments with an unsent
	// 24-hour reminder whose date column falls between fromDate and
	// toDate inclusive (YYYY-MM-DD strings, day granularity).
	FindDueDayReminders(ctx context.Context, fromDate, toDate string) ([]*entity.Appointment, error)

	// FindPendingHourReminders retrieves every confirmed appointment with
	// an unsent 1-hour reminder; the minute-window filter happens in the
	// use case, as the original job did client-side.
	FindPendingHourReminders(ctx context.Context) ([]*entity.Appointment, error)

	// ClaimReminder sets the reminder flag for the given offset with a
	// compare-and-set update (WHERE flag = false). It reports whether
	// this caller won the claim; false means another run owns delivery.
	ClaimReminder(ctx context.Context, id int64, offset entity.ReminderOffset, at time.Time) (bool, error)
}
