// Package scheduler implements the outbound client for the external
// calendar provider's v1 API.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"barbershop/config"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/service"

	"github.com/pkg/errors"
)

const vendorName = "cal.com"

// calComClient implements service.BookingScheduler against the Cal.com
// v1 REST API.
type calComClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCalComClient is the constructor for calComClient.
func NewCalComClient(cfg *config.Config, logger *slog.Logger) (service.BookingScheduler, error) {
	if cfg.CalCom == nil {
		return nil, errors.New("calcom configuration is missing")
	}
	if strings.TrimSpace(cfg.CalCom.APIKey) == "" {
		return nil, errors.New("calcom API key is missing")
	}

	return &calComClient{
		baseURL: strings.TrimRight(cfg.CalCom.BaseURL, "/"),
		apiKey:  cfg.CalCom.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.CalCom.Timeout,
		},
		logger: logger,
	}, nil
}

// CancelBooking cancels the booking with the given external event id
// using the configured API key.
func (c *calComClient) CancelBooking(ctx context.Context, eventUID string) error {
	return c.CancelBookingWithKey(ctx, eventUID, c.apiKey)
}

// CancelBookingWithKey cancels the booking authenticating as the given
// key. The v1 API takes the key in an apiKey request header.
func (c *calComClient) CancelBookingWithKey(ctx context.Context, eventUID, apiKey string) error {
	endpoint := fmt.Sprintf("%s/bookings/%s/cancel", c.baseURL, url.PathEscape(eventUID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apiKey", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.NewUpstreamError(vendorName, http.StatusBadGateway, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := readVendorMessage(resp.Body)

		c.logger.Warn("Scheduler cancel rejected",
			slog.String("eventUID", eventUID),
			slog.Int("status", resp.StatusCode),
			slog.String("vendorMessage", message),
		)

		return domainerrors.NewUpstreamError(vendorName, resp.StatusCode, message)
	}

	c.logger.Info("Scheduler booking cancelled",
		slog.String("eventUID", eventUID),
	)

	return nil
}

// readVendorMessage extracts a human-readable message from the vendor's
// error body, falling back to the raw text.
func readVendorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}

	return strings.TrimSpace(string(raw))
}
