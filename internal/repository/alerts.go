package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

func (s *SQLiteDB) AddAlert(ctx context.Context, a *models.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, alert_type, title, message, radius_km,
			origin_lat, origin_lng, audience, dispatch_channel, dispatched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Type), a.Title, a.Message, a.RadiusKm,
		a.Origin.Lat, a.Origin.Lng, string(a.Audience), string(a.Channel), a.DispatchedAt)
	if err != nil {
		return fmt.Errorf("error inserting alert: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetAlertByID(ctx context.Context, id string) (*models.Alert, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, alert_type, title, message, radius_km, origin_lat, origin_lng,
			audience, dispatch_channel, dispatched_at
		FROM alerts WHERE id = ?`, id)

	a, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying alert: %w", err)
	}
	return a, nil
}

func (s *SQLiteDB) ListAlerts(ctx context.Context, f AlertFilter) ([]models.Alert, error) {
	query := `
		SELECT id, alert_type, title, message, radius_km, origin_lat, origin_lng,
			audience, dispatch_channel, dispatched_at
		FROM alerts ORDER BY dispatched_at DESC`
	var args []any
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning alert: %w", err)
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func scanAlert(row rowScanner) (*models.Alert, error) {
	var a models.Alert
	err := row.Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.RadiusKm,
		&a.Origin.Lat, &a.Origin.Lng, &a.Audience, &a.Channel, &a.DispatchedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
