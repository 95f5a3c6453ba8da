package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/franzenjb/hurricane-aid-production/internal/config"
)

// Resend sends through the Resend REST API.
type Resend struct {
	url       string
	apiKey    string
	fromEmail string
	client    *http.Client
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewResend(cfg config.EmailConfig) *Resend {
	return &Resend{
		url:       cfg.ResendURL,
		apiKey:    cfg.ResendAPIKey,
		fromEmail: cfg.FromEmail,
		client:    &http.Client{Timeout: cfg.SendTimeout},
	}
}

func (r *Resend) Name() string { return "resend" }

func (r *Resend) Send(ctx context.Context, to, subject, htmlBody string) error {
	body, err := json.Marshal(resendPayload{
		From:    r.fromEmail,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("resend api error: %d - status: %s", resp.StatusCode, resp.Status)
	}
	return nil
}
