package geocode

import (
	"context"
	"log/slog"

	"github.com/franzenjb/hurricane-aid-production/internal/config"
	"github.com/franzenjb/hurricane-aid-production/internal/models"
	"github.com/franzenjb/hurricane-aid-production/internal/observability"
)

// Geocoder resolves a free-text address to coordinates. A (nil, nil) return
// means not found, which callers must treat as "proceed without coordinates".
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
	Name() string
}

// Chain tries providers in order, falling through on any error or empty
// result. It never surfaces a provider error to the caller: when every
// provider fails the chain reports not found.
type Chain struct {
	providers []Geocoder
	metrics   *observability.Metrics
}

// NewChain builds the provider order fixed at startup: Geocodio first when a
// key is configured, Nominatim always as the free fallback.
func NewChain(cfg config.GeocoderConfig, metrics *observability.Metrics) *Chain {
	var providers []Geocoder
	if cfg.GeocodioAPIKey != "" {
		providers = append(providers, NewGeocodio(cfg))
	}
	providers = append(providers, NewNominatim(cfg))

	return &Chain{providers: providers, metrics: metrics}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	for _, p := range c.providers {
		res, err := p.Geocode(ctx, address)
		switch {
		case err != nil:
			c.count(p.Name(), "error")
			slog.Warn("geocode provider failed", "provider", p.Name(), "error", err)
		case res == nil:
			c.count(p.Name(), "empty")
		default:
			c.count(p.Name(), "success")
			return res, nil
		}
	}
	return nil, nil
}

func (c *Chain) count(provider, outcome string) {
	if c.metrics != nil {
		c.metrics.GeocodeRequests.WithLabelValues(provider, outcome).Inc()
	}
}
