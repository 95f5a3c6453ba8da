package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
	"github.com/franzenjb/hurricane-aid-production/internal/notify"
	"github.com/franzenjb/hurricane-aid-production/internal/observability"
	"github.com/franzenjb/hurricane-aid-production/internal/repository"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidInput  = errors.New("invalid field value")
)

const defaultRadiusKm = 3

type AlertInput struct {
	Type     models.AlertType
	Title    string
	Message  string
	RadiusKm float64
	Origin   *models.Point
	Audience models.Audience
	Channel  models.Channel
}

// Outcome reports one dispatch. Partial success (some recipients failed) is a
// normal outcome, not an error.
type Outcome struct {
	AlertID         string
	RecipientsFound int
	EmailsSent      int
	SMSSent         int
	Failures        []notify.Failure
}

// Service persists an alert and fans it out to recipients within radius. The
// alert row is written before any dispatch so an audit trail exists even when
// every notification fails.
type Service struct {
	alerts     repository.AlertRepository
	recipients repository.RecipientRepository
	dispatcher *notify.Dispatcher
	clock      clockwork.Clock
	metrics    *observability.Metrics
}

func NewService(alerts repository.AlertRepository, recipients repository.RecipientRepository, dispatcher *notify.Dispatcher, clock clockwork.Clock, metrics *observability.Metrics) *Service {
	return &Service{
		alerts:     alerts,
		recipients: recipients,
		dispatcher: dispatcher,
		clock:      clock,
		metrics:    metrics,
	}
}

// SendAlert runs the full pipeline: validate, persist, resolve recipients,
// dispatch. Failures after persistence never roll the alert back. Each call
// produces a new alert and a new fan-out; there is no deduplication across
// calls.
func (s *Service) SendAlert(ctx context.Context, in AlertInput) (*Outcome, error) {
	alert, err := s.buildAlert(in)
	if err != nil {
		return nil, err
	}

	if err := s.alerts.AddAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to save alert: %w", err)
	}

	radiusMeters := alert.RadiusKm * 1000
	recipients, err := s.recipients.FindRecipientsInRadius(ctx, alert.Origin, radiusMeters, alert.Audience)
	if err != nil {
		return nil, fmt.Errorf("failed to find recipients: %w", err)
	}

	result, err := s.dispatcher.Dispatch(ctx, alert, recipients, alert.Channel)
	if err != nil {
		return nil, fmt.Errorf("dispatch failed: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AlertsDispatched.Inc()
		s.metrics.RecipientsResolved.Add(float64(len(recipients)))
	}

	slog.Info("alert dispatched",
		"alert_id", alert.ID,
		"recipients_found", len(recipients),
		"emails_sent", result.EmailsSent,
		"failures", len(result.Failures))

	return &Outcome{
		AlertID:         alert.ID,
		RecipientsFound: len(recipients),
		EmailsSent:      result.EmailsSent,
		SMSSent:         result.SMSSent,
		Failures:        result.Failures,
	}, nil
}

func (s *Service) buildAlert(in AlertInput) (*models.Alert, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" || in.Origin == nil {
		return nil, ErrMissingFields
	}

	alertType := in.Type
	if alertType == "" {
		alertType = models.AlertUpdate
	}
	if !models.ValidAlertType(alertType) {
		return nil, fmt.Errorf("%w: alert_type %q", ErrInvalidInput, in.Type)
	}

	radius := in.RadiusKm
	if radius <= 0 {
		radius = defaultRadiusKm
	}

	audience := in.Audience
	if audience == "" {
		audience = models.AudienceBoth
	}
	if !models.ValidAudience(audience) {
		return nil, fmt.Errorf("%w: audience %q", ErrInvalidInput, in.Audience)
	}

	channel := in.Channel
	if channel == "" {
		channel = models.ChannelEmail
	}
	if !models.ValidChannel(channel) {
		return nil, fmt.Errorf("%w: dispatch_channel %q", ErrInvalidInput, in.Channel)
	}

	return &models.Alert{
		ID:           uuid.NewString(),
		Type:         alertType,
		Title:        in.Title,
		Message:      in.Message,
		RadiusKm:     radius,
		Origin:       *in.Origin,
		Audience:     audience,
		Channel:      channel,
		DispatchedAt: s.clock.Now().UTC(),
	}, nil
}
