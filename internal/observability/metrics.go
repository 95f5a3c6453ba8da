package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the aid-coordination service.
type Metrics struct {
	RequestsSubmitted  prometheus.Counter
	VolunteersSignedUp prometheus.Counter
	AlertsDispatched   prometheus.Counter
	RecipientsResolved prometheus.Counter
	EmailsSent         prometheus.Counter
	EmailFailures      prometheus.Counter

	// labels: provider={geocodio,nominatim}, outcome={success,error,empty}
	GeocodeRequests *prometheus.CounterVec
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RequestsSubmitted,
		m.VolunteersSignedUp,
		m.AlertsDispatched,
		m.RecipientsResolved,
		m.EmailsSent,
		m.EmailFailures,
		m.GeocodeRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_aid",
			Name:      "requests_submitted_total",
			Help:      "Total help requests persisted.",
		}),
		VolunteersSignedUp: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_aid",
			Name:      "volunteers_signed_up_total",
			Help:      "Total volunteer registrations persisted.",
		}),
		AlertsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_aid",
			Name:      "alerts_dispatched_total",
			Help:      "Total alerts persisted and dispatched.",
		}),
		RecipientsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_aid",
			Name:      "recipients_resolved_total",
			Help:      "Total recipients resolved across all alerts.",
		}),
		EmailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_aid",
			Name:      "emails_sent_total",
			Help:      "Total alert emails accepted by a provider.",
		}),
		EmailFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurricane_aid",
			Name:      "email_failures_total",
			Help:      "Total per-recipient email send failures.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurricane_aid",
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}
}
