package usecase

import (
	"context"
	"time"
)

// ReminderResult reports one reminder scan.
type ReminderResult struct {
	// Sent counts successful per-subscription deliveries; a user with
	// two subscriptions contributes two on success.
	Sent int `json:"sent"`
	// Total counts appointments that were due in this scan.
	Total int `json:"total"`
}

// ReminderUsecase runs the externally triggered reminder scan.
type ReminderUsecase interface {
	// Run scans for appointments due a 24-hour or 1-hour reminder
	// relative to now and delivers push notifications. Per-subscription
	// delivery failures are swallowed; repository read failures abort
	// the scan.
	Run(ctx context.Context, now time.Time) (*ReminderResult, error)
}
