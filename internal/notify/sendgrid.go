package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/franzenjb/hurricane-aid-production/internal/config"
)

// SendGrid is the fallback provider, used when only a SendGrid key is
// configured.
type SendGrid struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGrid(cfg config.EmailConfig) *SendGrid {
	return &SendGrid{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}
}

func (s *SendGrid) Name() string { return "sendgrid" }

func (s *SendGrid) Send(ctx context.Context, to, subject, htmlBody string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(to, to)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	p := mail.NewPersonalization()
	p.AddTos(recipient)
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid api error: %d", resp.StatusCode)
	}
	return nil
}
