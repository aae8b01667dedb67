package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"barbershop/config"
	"barbershop/internal/delivery/http/response"
	"barbershop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/fx"
)

const (
	calSignatureHeader    = "X-Cal-Signature-256"
	stripeSignatureHeader = "Stripe-Signature"
	maxWebhookBody        = 1 << 20
)

// WebhookHandlerParams holds dependencies for WebhookHandler, injected by Fx.
type WebhookHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// WebhookHandler receives booking events from the external scheduler and
// the payment provider.
type WebhookHandler struct {
	bookingUC usecase.BookingUsecase
	cfg       *config.Config
	logger    *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler.
func NewWebhookHandler(params WebhookHandlerParams) *WebhookHandler {
	return &WebhookHandler{
		bookingUC: params.BookingUC,
		cfg:       params.Config,
		logger:    params.Logger,
	}
}

// calWebhookBody is the scheduler's webhook envelope.
type calWebhookBody struct {
	TriggerEvent string `json:"triggerEvent"`
	Payload      struct {
		UID       string          `json:"uid"`
		Title     string          `json:"title"`
		StartTime json.RawMessage `json:"startTime"`
		EndTime   json.RawMessage `json:"endTime"`
		Attendees []struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"attendees"`
	} `json:"payload"`
}

// HandleCal processes the scheduler's booking webhooks.
func (h *WebhookHandler) HandleCal(c echo.Context) error {
	rawBody, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return response.BadRequest(c, "INVALID_BODY", "Failed to read webhook body")
	}

	if !h.verifyCalSignature(c, rawBody) {
		return response.Unauthorized(c, "INVALID_SIGNATURE", "Webhook signature verification failed")
	}

	// Test pings arrive before the webhook is fully configured on the
	// scheduler side; acknowledge without parsing.
	raw := string(rawBody)
	if strings.Contains(raw, `"ping":true`) || strings.Contains(raw, `"type":"test"`) {
		return response.Success(c, http.StatusOK, nil, "Webhook test successful")
	}

	var body calWebhookBody
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return response.BadRequest(c, "INVALID_JSON", "Invalid JSON body")
	}

	trigger := strings.ToUpper(body.TriggerEvent)
	if !strings.HasPrefix(trigger, "BOOKING") {
		h.logger.Info("Ignoring non-booking webhook event",
			slog.String("triggerEvent", body.TriggerEvent),
		)

		return response.Success(c, http.StatusOK, nil, "Event type ignored")
	}

	switch trigger {
	case "BOOKING_CANCELLED":
		if err := h.bookingUC.CancelByEventUID(c.Request().Context(), body.Payload.UID); err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, nil, "Booking cancelled")
	case "BOOKING_CREATED":
		return h.ingestCalBooking(c, &body)
	default:
		h.logger.Info("Ignoring unhandled booking event",
			slog.String("triggerEvent", body.TriggerEvent),
		)

		return response.Success(c, http.StatusOK, nil, "Event type ignored")
	}
}

func (h *WebhookHandler) ingestCalBooking(c echo.Context, body *calWebhookBody) error {
	// The shop owner appears as an attendee of every booking; the
	// customer is the first attendee with a different email.
	var attendeeEmail string
	for _, attendee := range body.Payload.Attendees {
		if !strings.EqualFold(attendee.Email, h.cfg.CalCom.OwnerEmail) {
			attendeeEmail = attendee.Email

			break
		}
	}
	if attendeeEmail == "" {
		return response.BadRequest(c, "USER_EMAIL_NOT_FOUND", "User email not found in attendees")
	}

	appointment, created, err := h.bookingUC.Ingest(c.Request().Context(), &usecase.BookingEvent{
		CalEventUID:   body.Payload.UID,
		Title:         body.Payload.Title,
		StartTime:     body.Payload.StartTime,
		EndTime:       body.Payload.EndTime,
		AttendeeEmail: attendeeEmail,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	return response.Success(c, status, appointment, "Booking processed")
}

// verifyCalSignature checks the HMAC-SHA256 signature when a webhook
// secret is configured; without one every payload is accepted.
func (h *WebhookHandler) verifyCalSignature(c echo.Context, rawBody []byte) bool {
	secret := ""
	if h.cfg.CalCom != nil {
		secret = h.cfg.CalCom.WebhookSecret
	}
	if secret == "" {
		return true
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(c.Request().Header.Get(calSignatureHeader)))
}

// HandleStripe processes payment webhooks. Only completed checkout
// sessions are interesting; they carry the appointment fields in the
// session metadata.
func (h *WebhookHandler) HandleStripe(c echo.Context) error {
	rawBody, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return response.BadRequest(c, "INVALID_BODY", "Failed to read webhook body")
	}

	event, err := webhook.ConstructEvent(rawBody, c.Request().Header.Get(stripeSignatureHeader), h.cfg.Stripe.WebhookSecret)
	if err != nil {
		return response.BadRequest(c, "INVALID_SIGNATURE", "Invalid signature")
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return response.Success(c, http.StatusOK, nil, "Event type ignored")
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return response.BadRequest(c, "INVALID_JSON", "Failed to parse checkout session")
	}

	bookingEvent, err := h.checkoutSessionEvent(&session)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if _, _, err := h.bookingUC.Ingest(c.Request().Context(), bookingEvent); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"received": true}, "")
}

func (h *WebhookHandler) checkoutSessionEvent(session *stripe.CheckoutSession) (*usecase.BookingEvent, error) {
	metadata := session.Metadata
	if metadata == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "No metadata found in session")
	}

	userID, err := uuid.Parse(metadata["userId"])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid user id in session metadata")
	}

	return &usecase.BookingEvent{
		CalEventUID:     session.ID,
		Title:           metadata["serviceName"],
		StartTime:       json.RawMessage(strconv.Quote(metadata["startTime"])),
		EndTime:         json.RawMessage(strconv.Quote(metadata["endTime"])),
		UserID:          userID,
		PaymentStatus:   "paid",
		StripeSessionID: session.ID,
		AmountPaid:      float64(session.AmountTotal) / 100,
	}, nil
}
