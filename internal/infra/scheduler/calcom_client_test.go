package scheduler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"barbershop/config"
	domainerrors "barbershop/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *calComClient {
	t.Helper()

	cfg := &config.Config{
		CalCom: &config.CalComConfig{
			BaseURL: baseURL,
			APIKey:  "test-key",
			Timeout: 2 * time.Second,
		},
	}

	client, err := NewCalComClient(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	concrete, ok := client.(*calComClient)
	require.True(t, ok)

	return concrete
}

func TestCalComClient_CancelBooking(t *testing.T) {
	var gotMethod, gotPath, gotAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apiKey")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.CancelBooking(context.Background(), "evt-abc-123")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/bookings/evt-abc-123/cancel", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
}

func TestCalComClient_CancelBookingWithKey_ForwardsCallerKey(t *testing.T) {
	var gotAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apiKey")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.CancelBookingWithKey(context.Background(), "evt-abc-123", "caller-key")
	require.NoError(t, err)

	// The configured key must not leak into a caller-authenticated call.
	assert.Equal(t, "caller-key", gotAPIKey)
}

func TestCalComClient_CancelBooking_VendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"booking not found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.CancelBooking(context.Background(), "missing-uid")
	require.Error(t, err)

	var upstreamErr *domainerrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.HTTPCode())
	assert.Contains(t, upstreamErr.Message(), "booking not found")
	assert.Equal(t, "cal.com", upstreamErr.Details())
}

func TestCalComClient_CancelBooking_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL)

	err := client.CancelBooking(context.Background(), "evt-1")
	require.Error(t, err)

	var upstreamErr *domainerrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusBadGateway, upstreamErr.HTTPCode())
}

func TestNewCalComClient_RequiresAPIKey(t *testing.T) {
	cfg := &config.Config{
		CalCom: &config.CalComConfig{BaseURL: "https://api.example.com/v1"},
	}

	_, err := NewCalComClient(cfg, slog.New(slog.DiscardHandler))
	require.Error(t, err)
}
