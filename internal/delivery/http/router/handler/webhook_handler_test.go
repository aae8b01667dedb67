package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookingUsecase struct {
	mock.Mock
}

func (m *mockBookingUsecase) Ingest(ctx context.Context, event *usecase.BookingEvent) (*entity.Appointment, bool, error) {
	args := m.Called(ctx, event)

	var appointment *entity.Appointment
	if args.Get(0) != nil {
		appointment = args.Get(0).(*entity.Appointment)
	}

	return appointment, args.Bool(1), args.Error(2)
}

func (m *mockBookingUsecase) CancelByEventUID(ctx context.Context, calEventUID string) error {
	args := m.Called(ctx, calEventUID)

	return args.Error(0)
}

func newWebhookFixture(cfg *config.Config) (*WebhookHandler, *mockBookingUsecase) {
	bookingUC := new(mockBookingUsecase)
	h := &WebhookHandler{
		bookingUC: bookingUC,
		cfg:       cfg,
		logger:    slog.New(slog.DiscardHandler),
	}

	return h, bookingUC
}

func postCalWebhook(h *WebhookHandler, body string, sign func(r *http.Request)) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/cal", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if sign != nil {
		sign(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.HandleCal(c)

	return rec
}

func TestWebhookHandler_HandleCal_Ping(t *testing.T) {
	h, bookingUC := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{OwnerEmail: "owner@shop.test"},
	})

	rec := postCalWebhook(h, `{"ping":true}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Webhook test successful")
	bookingUC.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestWebhookHandler_HandleCal_BookingCreated(t *testing.T) {
	h, bookingUC := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{OwnerEmail: "owner@shop.test"},
	})

	bookingUC.On("Ingest", mock.Anything, mock.MatchedBy(func(event *usecase.BookingEvent) bool {
		return event.CalEventUID == "evt_123" &&
			event.Title == "Classic Haircut" &&
			event.AttendeeEmail == "customer@example.com"
	})).Return(&entity.Appointment{ID: 42, CalEventUID: "evt_123"}, true, nil)

	body := `{
		"triggerEvent": "BOOKING_CREATED",
		"payload": {
			"uid": "evt_123",
			"title": "Classic Haircut",
			"startTime": "2026-09-15T10:00:00.000Z",
			"attendees": [
				{"email": "OWNER@shop.test", "name": "The Shop"},
				{"email": "customer@example.com", "name": "Customer"}
			]
		}
	}`
	rec := postCalWebhook(h, body, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	bookingUC.AssertExpectations(t)
}

func TestWebhookHandler_HandleCal_ReplayReturnsOK(t *testing.T) {
	h, bookingUC := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{OwnerEmail: "owner@shop.test"},
	})

	bookingUC.On("Ingest", mock.Anything, mock.Anything).
		Return(&entity.Appointment{ID: 42, CalEventUID: "evt_123"}, false, nil)

	body := `{
		"triggerEvent": "booking_created",
		"payload": {
			"uid": "evt_123",
			"title": "Classic Haircut",
			"startTime": "2026-09-15T10:00:00.000Z",
			"attendees": [{"email": "customer@example.com", "name": "Customer"}]
		}
	}`
	rec := postCalWebhook(h, body, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	bookingUC.AssertExpectations(t)
}

func TestWebhookHandler_HandleCal_OnlyOwnerAttendee(t *testing.T) {
	h, bookingUC := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{OwnerEmail: "owner@shop.test"},
	})

	body := `{
		"triggerEvent": "BOOKING_CREATED",
		"payload": {
			"uid": "evt_123",
			"title": "Classic Haircut",
			"startTime": "2026-09-15T10:00:00.000Z",
			"attendees": [{"email": "owner@shop.test", "name": "The Shop"}]
		}
	}`
	rec := postCalWebhook(h, body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_EMAIL_NOT_FOUND")
	bookingUC.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestWebhookHandler_HandleCal_BookingCancelled(t *testing.T) {
	h, bookingUC := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{OwnerEmail: "owner@shop.test"},
	})

	bookingUC.On("CancelByEventUID", mock.Anything, "evt_123").Return(nil)

	body := `{"triggerEvent": "BOOKING_CANCELLED", "payload": {"uid": "evt_123"}}`
	rec := postCalWebhook(h, body, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	bookingUC.AssertExpectations(t)
}

func TestWebhookHandler_HandleCal_NonBookingEventIgnored(t *testing.T) {
	h, bookingUC := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{OwnerEmail: "owner@shop.test"},
	})

	body := `{"triggerEvent": "FORM_SUBMITTED", "payload": {"uid": "evt_123"}}`
	rec := postCalWebhook(h, body, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event type ignored")
	bookingUC.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
	bookingUC.AssertNotCalled(t, "CancelByEventUID", mock.Anything, mock.Anything)
}

func TestWebhookHandler_HandleCal_SignatureVerification(t *testing.T) {
	const secret = "whsec_test"

	h, bookingUC := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{
			OwnerEmail:    "owner@shop.test",
			WebhookSecret: secret,
		},
	})

	bookingUC.On("CancelByEventUID", mock.Anything, "evt_123").Return(nil)

	body := `{"triggerEvent": "BOOKING_CANCELLED", "payload": {"uid": "evt_123"}}`

	t.Run("valid signature", func(t *testing.T) {
		rec := postCalWebhook(h, body, func(r *http.Request) {
			mac := hmac.New(sha256.New, []byte(secret))
			mac.Write([]byte(body))
			r.Header.Set(calSignatureHeader, hex.EncodeToString(mac.Sum(nil)))
		})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing signature", func(t *testing.T) {
		rec := postCalWebhook(h, body, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_SIGNATURE")
	})

	t.Run("wrong signature", func(t *testing.T) {
		rec := postCalWebhook(h, body, func(r *http.Request) {
			r.Header.Set(calSignatureHeader, "deadbeef")
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWebhookHandler_HandleCal_InvalidJSON(t *testing.T) {
	h, _ := newWebhookFixture(&config.Config{
		CalCom: &config.CalComConfig{OwnerEmail: "owner@shop.test"},
	})

	rec := postCalWebhook(h, `{not json`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")
}

func TestWebhookHandler_HandleStripe_BadSignature(t *testing.T) {
	h, bookingUC := newWebhookFixture(&config.Config{
		Stripe: &config.StripeConfig{WebhookSecret: "whsec_stripe"},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(`{}`))
	req.Header.Set(stripeSignatureHeader, "t=1,v1=bogus")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.HandleStripe(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_SIGNATURE")
	bookingUC.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}
