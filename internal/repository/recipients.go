package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/golang/geo/s2"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

const earthRadiusMeters = 6371000.0

// FindRecipientsInRadius resolves contactable parties within radiusMeters of
// origin. SQLite carries no spatial extension, so rows are prefiltered with a
// bounding box in SQL and the exact great-circle containment test runs here.
// Residents are geocoded help-request submitters; volunteers must have opted
// in to alerts.
func (s *SQLiteDB) FindRecipientsInRadius(ctx context.Context, origin models.Point, radiusMeters float64, audience models.Audience) ([]models.Recipient, error) {
	minLat, maxLat, minLng, maxLng := boundingBox(origin, radiusMeters)

	recipients := []models.Recipient{}

	if audience == models.AudienceResidents || audience == models.AudienceBoth {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, COALESCE(email, ''), phone, latitude, longitude
			FROM requests
			WHERE latitude IS NOT NULL AND longitude IS NOT NULL
				AND latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?`,
			minLat, maxLat, minLng, maxLng)
		if err != nil {
			return nil, fmt.Errorf("error querying resident recipients: %w", err)
		}
		recipients, err = appendInRadius(rows, recipients, origin, radiusMeters, models.AudienceResidents)
		if err != nil {
			return nil, err
		}
	}

	if audience == models.AudienceVolunteers || audience == models.AudienceBoth {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, COALESCE(email, ''), COALESCE(phone, ''), latitude, longitude
			FROM volunteers
			WHERE alert_opt_in = 1
				AND latitude IS NOT NULL AND longitude IS NOT NULL
				AND latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?`,
			minLat, maxLat, minLng, maxLng)
		if err != nil {
			return nil, fmt.Errorf("error querying volunteer recipients: %w", err)
		}
		recipients, err = appendInRadius(rows, recipients, origin, radiusMeters, models.AudienceVolunteers)
		if err != nil {
			return nil, err
		}
	}

	return recipients, nil
}

type recipientRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func appendInRadius(rows recipientRows, recipients []models.Recipient, origin models.Point, radiusMeters float64, audience models.Audience) ([]models.Recipient, error) {
	defer rows.Close()

	for rows.Next() {
		var r models.Recipient
		if err := rows.Scan(&r.ID, &r.Email, &r.Phone, &r.Location.Lat, &r.Location.Lng); err != nil {
			return nil, fmt.Errorf("error scanning recipient: %w", err)
		}
		if distanceMeters(origin, r.Location) > radiusMeters {
			continue
		}
		r.Audience = audience
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

// distanceMeters is the great-circle distance between two points.
func distanceMeters(a, b models.Point) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lng)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return la.Distance(lb).Radians() * earthRadiusMeters
}

// boundingBox returns a lat/lng rectangle guaranteed to contain the radius,
// used only as a cheap SQL prefilter before the exact distance test.
func boundingBox(origin models.Point, radiusMeters float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusMeters / 111320.0
	cosLat := math.Cos(origin.Lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := radiusMeters / (111320.0 * cosLat)

	return origin.Lat - latDelta, origin.Lat + latDelta,
		origin.Lng - lngDelta, origin.Lng + lngDelta
}
