package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/franzenjb/hurricane-aid-production/internal/config"
	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

// Geocodio is the paid primary provider.
type Geocodio struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type geocodioResponse struct {
	Results []geocodioResult `json:"results"`
}

type geocodioResult struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	FormattedAddress string `json:"formatted_address"`
}

func NewGeocodio(cfg config.GeocoderConfig) *Geocodio {
	return &Geocodio{
		baseURL: cfg.GeocodioURL,
		apiKey:  cfg.GeocodioAPIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (g *Geocodio) Name() string { return "geocodio" }

func (g *Geocodio) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("api_key", g.apiKey)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data geocodioResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	if len(data.Results) == 0 {
		return nil, nil
	}

	r := data.Results[0]
	return &models.GeocodeResult{
		Lat:              r.Location.Lat,
		Lng:              r.Location.Lng,
		FormattedAddress: r.FormattedAddress,
	}, nil
}
