// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus enumerates the appointment lifecycle states.
type AppointmentStatus string

const (
	// StatusPending exists only in legacy rows; no code path creates it.
	StatusPending AppointmentStatus = "pending"
	// StatusConfirmed is the state of every freshly ingested booking.
	StatusConfirmed AppointmentStatus = "confirmed"
	// StatusCompleted is terminal.
	StatusCompleted AppointmentStatus = "completed"
	// StatusCancelled is terminal.
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ReminderOffset identifies one of the fixed reminder lead times.
type ReminderOffset string

const (
	// ReminderOneDay is the 24-hour lead time.
	ReminderOneDay ReminderOffset = "1d"
	// ReminderOneHour is the 1-hour lead time.
	ReminderOneHour ReminderOffset = "1h"
)

// Appointment represents one scheduled visit.
//
// The row carries both the canonical StartTime/EndTime timestamps and the
// redundant Date ("2006-01-02") and Time ("15:04") columns from the older
// schema generation; the reminder queries read the string pair.
type Appointment struct {
	ID              int64             `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	ServiceID       *int64            `json:"service_id"`       // Matched catalog entry, nil when matching was skipped.
	ServiceName     string            `json:"service_name"`     // Free-text title as delivered by the scheduler.
	CalEventUID     string            `json:"cal_event_uid"`    // External scheduler event id; unique, the de-duplication key.
	StartTime       time.Time         `json:"start_time"`
	EndTime         *time.Time        `json:"end_time"`
	Date            string            `json:"date"` // YYYY-MM-DD, kept in sync with StartTime.
	Time            string            `json:"time"` // HH:MM, kept in sync with StartTime.
	Status          AppointmentStatus `json:"status"`
	PaymentStatus   string            `json:"payment_status,omitempty"` // "paid" for Stripe-created rows, empty otherwise.
	StripeSessionID string            `json:"stripe_session_id,omitempty"`
	AmountPaid      float64           `json:"amount_paid,omitempty"`
	Reminder1DSent  bool              `json:"reminder_1d_sent"`
	Reminder1HSent  bool              `json:"reminder_1h_sent"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SyncDateTime fills the legacy date/time columns from StartTime.
func (a *Appointment) SyncDateTime() {
	a.Date = a.StartTime.Format("2006-01-02")
	a.Time = a.StartTime.Format("15:04")
}
