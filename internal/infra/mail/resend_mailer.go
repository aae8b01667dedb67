// Package mail sends transactional email through the Resend API.
package mail

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

// resendMailer implements service.Mailer on the Resend API.
type resendMailer struct {
	client     *resend.Client
	from       string
	adminEmail string
	logger     *slog.Logger
}

// NewResendMailer is the constructor for resendMailer.
func NewResendMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Mail == nil {
		return nil, errors.New("mail configuration is missing")
	}
	if strings.TrimSpace(cfg.Mail.APIKey) == "" {
		return nil, errors.New("mail API key is missing")
	}

	return &resendMailer{
		client:     resend.NewClient(cfg.Mail.APIKey),
		from:       cfg.Mail.From,
		adminEmail: cfg.Mail.AdminEmail,
		logger:     logger,
	}, nil
}

// SendContactNotification emails the shop admin about a new contact-form
// submission.
func (m *resendMailer) SendContactNotification(ctx context.Context, message *entity.ContactMessage) error {
	subject := message.Subject
	if subject == "" {
		subject = "New contact form message"
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.adminEmail},
		ReplyTo: message.Email,
		Subject: fmt.Sprintf("Contact form: %s", subject),
		Html:    buildContactHTML(message),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrap(err, "failed to send contact notification email")
	}

	m.logger.Info("Contact notification sent",
		slog.String("emailID", sent.Id),
		slog.String("senderEmail", message.Email),
	)

	return nil
}

func buildContactHTML(message *entity.ContactMessage) string {
	var sb strings.Builder

	sb.WriteString("<h2>New contact form submission</h2>")
	sb.WriteString(fmt.Sprintf("<p><strong>Name:</strong> %s</p>", html.EscapeString(message.Name)))
	sb.WriteString(fmt.Sprintf("<p><strong>Email:</strong> %s</p>", html.EscapeString(message.Email)))
	if message.Subject != "" {
		sb.WriteString(fmt.Sprintf("<p><strong>Subject:</strong> %s</p>", html.EscapeString(message.Subject)))
	}
	sb.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(message.Message)))

	return sb.String()
}
