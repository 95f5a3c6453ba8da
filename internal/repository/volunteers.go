package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

func (s *SQLiteDB) AddVolunteer(ctx context.Context, v *models.Volunteer) error {
	var lat, lng sql.NullFloat64
	if v.Location != nil {
		lat = sql.NullFloat64{Float64: v.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: v.Location.Lng, Valid: true}
	}

	optIn := 0
	if v.AlertOptIn {
		optIn = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO volunteers (id, name, phone, email, address, skills,
			alert_opt_in, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.Phone, v.Email, v.Address, v.Skills, optIn, lat, lng, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting volunteer: %w", err)
	}
	return nil
}

func (s *SQLiteDB) ListVolunteers(ctx context.Context, f VolunteerFilter) ([]models.Volunteer, error) {
	query := `
		SELECT id, name, phone, email, address, skills, alert_opt_in,
			latitude, longitude, created_at
		FROM volunteers`

	var conds []string
	var args []any

	if len(f.IDs) > 0 {
		conds = append(conds, "id IN ("+placeholders(len(f.IDs))+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}
	if f.AlertOptIn != nil {
		conds = append(conds, "alert_opt_in = ?")
		if *f.AlertOptIn {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
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
		return nil, fmt.Errorf("error querying volunteers: %w", err)
	}
	defer rows.Close()

	volunteers := []models.Volunteer{}
	for rows.Next() {
		var v models.Volunteer
		var phone, email, address, skills sql.NullString
		var lat, lng sql.NullFloat64
		var optIn int

		err := rows.Scan(&v.ID, &v.Name, &phone, &email, &address, &skills,
			&optIn, &lat, &lng, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning volunteer: %w", err)
		}

		v.Phone = phone.String
		v.Email = email.String
		v.Address = address.String
		v.Skills = skills.String
		v.AlertOptIn = optIn == 1
		if lat.Valid && lng.Valid {
			v.Location = &models.Point{Lat: lat.Float64, Lng: lng.Float64}
		}
		volunteers = append(volunteers, v)
	}
	return volunteers, rows.Err()
}
