package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/franzenjb/hurricane-aid-production/internal/config"
)

// EmailSender delivers one rendered alert email to one recipient.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
	Name() string
}

// NewSenderFromConfig picks the provider once at startup: Resend when its key
// is configured, SendGrid otherwise. Returns nil when neither credential is
// present; the dispatcher fails fast on a nil sender.
func NewSenderFromConfig(cfg config.EmailConfig) EmailSender {
	if cfg.ResendAPIKey != "" {
		return NewResend(cfg)
	}
	if cfg.SendGridAPIKey != "" {
		return NewSendGrid(cfg)
	}
	return nil
}

var alertTemplate = template.Must(template.New("alert").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #dc2626; color: white; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">Emergency Alert</h1>
  </div>
  <div style="padding: 20px; background-color: #f9f9f9;">
    <h2 style="color: #dc2626; margin-top: 0;">{{.Title}}</h2>
    <p style="font-size: 16px; line-height: 1.5;">{{.Message}}</p>
    <div style="margin-top: 20px; padding: 15px; background-color: #fef3c7; border-left: 4px solid #f59e0b;">
      <p style="margin: 0; font-size: 14px;">
        <strong>This is an official emergency alert.</strong>
        Reply STOP to unsubscribe from future alerts.
      </p>
    </div>
  </div>
</div>`))

// RenderAlertHTML renders the fixed alert body with the compliance footer.
func RenderAlertHTML(title, message string) (string, error) {
	var b strings.Builder
	err := alertTemplate.Execute(&b, struct {
		Title   string
		Message string
	}{Title: title, Message: message})
	if err != nil {
		return "", fmt.Errorf("rendering alert template: %w", err)
	}
	return b.String(), nil
}
