// Package service defines interfaces for external collaborators reached
// over the network, abstracting vendor details from the use cases.
package service

import "context"

// BookingScheduler is the outbound side of the external calendar
// provider: the provider owns the booking UI and emits webhooks, the
// application only propagates cancellations back.
type BookingScheduler interface {
	// CancelBooking cancels the booking with the given external event id
	// using the service's own credentials. A non-2xx vendor response
	// surfaces as a *domainerrors.UpstreamError carrying the vendor's
	// status code and message.
	CancelBooking(ctx context.Context, eventUID string) error

	// CancelBookingWithKey cancels the booking authenticating with the
	// caller-supplied API key instead of the configured one. The provider
	// rejects an invalid key, so the proxy never has to judge the key
	// itself.
	CancelBookingWithKey(ctx context.Context, eventUID, apiKey string) error
}
