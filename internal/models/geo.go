package models

// Point is a WGS84 coordinate pair. GeoJSON output orders it [lng, lat].
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodeResult is the outcome of one address lookup. Not cached.
type GeocodeResult struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}

func (g *GeocodeResult) Point() Point {
	return Point{Lat: g.Lat, Lng: g.Lng}
}

// Recipient is a contactable party resolved for one alert. Recipients are
// derived per dispatch from requests and volunteers, never stored.
type Recipient struct {
	ID       string
	Email    string
	Phone    string
	Location Point
	Audience Audience // residents or volunteers
}
