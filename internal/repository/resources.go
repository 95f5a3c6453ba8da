package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

func (s *SQLiteDB) AddResource(ctx context.Context, r *models.Resource) error {
	var lat, lng sql.NullFloat64
	if r.Location != nil {
		lat = sql.NullFloat64{Float64: r.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: r.Location.Lng, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resources (id, name, type, status, address, latitude,
			longitude, details, updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Type, string(r.Status), r.Address, lat, lng,
		r.Details, r.UpdatedAt, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting resource: %w", err)
	}
	return nil
}

func (s *SQLiteDB) ListResources(ctx context.Context, f ResourceFilter) ([]models.Resource, error) {
	query := `
		SELECT id, name, type, status, address, latitude, longitude, details,
			updated_at, created_at
		FROM resources`

	var conds []string
	var args []any

	if len(f.IDs) > 0 {
		conds = append(conds, "id IN ("+placeholders(len(f.IDs))+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, *f.Type)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var r models.Resource
		var address, details sql.NullString
		var lat, lng sql.NullFloat64

		err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Status, &address,
			&lat, &lng, &details, &r.UpdatedAt, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning resource: %w", err)
		}

		r.Address = address.String
		r.Details = details.String
		if lat.Valid && lng.Valid {
			r.Location = &models.Point{Lat: lat.Float64, Lng: lng.Float64}
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}
