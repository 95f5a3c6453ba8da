package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/franzenjb/hurricane-aid-production/internal/config"
	"github.com/franzenjb/hurricane-aid-production/internal/models"
	"github.com/franzenjb/hurricane-aid-production/internal/observability"
	"github.com/franzenjb/hurricane-aid-production/internal/worker"
)

var ErrNoProvider = errors.New("no email provider configured")

// Failure records one per-recipient send that did not go through. Failures
// never abort the batch.
type Failure struct {
	Recipient string
	Channel   models.Channel
	Reason    string
}

// Result is the aggregate outcome of one fan-out. Partial success is a
// normal, reportable outcome.
type Result struct {
	EmailsSent int
	SMSSent    int
	Failures   []Failure
}

// Dispatcher fans an alert out to a resolved recipient list with bounded
// concurrency. Recipients are processed in no guaranteed order.
type Dispatcher struct {
	sender  EmailSender
	cfg     config.DispatchConfig
	metrics *observability.Metrics
}

func NewDispatcher(sender EmailSender, cfg config.DispatchConfig, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{sender: sender, cfg: cfg, metrics: metrics}
}

// Dispatch sends the alert to every recipient over the requested channel.
// Per-recipient failures are contained and aggregated; a missing provider for
// an email dispatch fails the whole call before any send is attempted. The
// sms channel is accepted but reports zero sent until a provider is wired up.
func (d *Dispatcher) Dispatch(ctx context.Context, alert *models.Alert, recipients []models.Recipient, channel models.Channel) (*Result, error) {
	if !models.ValidChannel(channel) {
		return nil, fmt.Errorf("invalid dispatch channel: %s", channel)
	}

	res := &Result{}

	if channel == models.ChannelEmail || channel == models.ChannelBoth {
		if err := d.dispatchEmail(ctx, alert, recipients, res); err != nil {
			return nil, err
		}
	}

	if channel == models.ChannelSMS || channel == models.ChannelBoth {
		// SMS is a deliberately unimplemented capability: the channel is
		// validated and reported, nothing is sent.
		slog.Info("sms dispatch not implemented, skipping", "alert_id", alert.ID)
	}

	return res, nil
}

func (d *Dispatcher) dispatchEmail(ctx context.Context, alert *models.Alert, recipients []models.Recipient, res *Result) error {
	if d.sender == nil {
		return ErrNoProvider
	}

	htmlBody, err := RenderAlertHTML(alert.Title, alert.Message)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	processor := func(ctx context.Context, r models.Recipient) error {
		sendErr := d.sender.Send(ctx, r.Email, alert.Title, htmlBody)

		mu.Lock()
		defer mu.Unlock()
		if sendErr != nil {
			slog.Error("alert email failed", "alert_id", alert.ID, "recipient", r.Email, "error", sendErr)
			res.Failures = append(res.Failures, Failure{Recipient: r.Email, Channel: models.ChannelEmail, Reason: sendErr.Error()})
			if d.metrics != nil {
				d.metrics.EmailFailures.Inc()
			}
			return sendErr
		}
		res.EmailsSent++
		if d.metrics != nil {
			d.metrics.EmailsSent.Inc()
		}
		return nil
	}

	pool := worker.NewPool(d.cfg.Workers, d.cfg.BufferSize, processor)
	pool.Start(ctx)

	for _, r := range recipients {
		if r.Email == "" {
			continue
		}
		// Stop issuing new sends once the request is cancelled; in-flight
		// sends are best effort.
		if ctx.Err() != nil {
			break
		}
		if err := pool.SubmitCtx(ctx, r); err != nil {
			break
		}
	}
	pool.Stop()

	return nil
}
