package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

func (s *SQLiteDB) AddRequest(ctx context.Context, r *models.HelpRequest) error {
	var lat, lng sql.NullFloat64
	if r.Location != nil {
		lat = sql.NullFloat64{Float64: r.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: r.Location.Lng, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requests (id, resident_name, phone, email, address, need_type,
			priority, notes, source, latitude, longitude, formatted_address, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ResidentName, r.Phone, r.Email, r.Address, string(r.NeedType),
		string(r.Priority), r.Notes, string(r.Source), lat, lng,
		r.FormattedAddress, string(r.Status), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting request: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetRequestByID(ctx context.Context, id string) (*models.HelpRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, resident_name, phone, email, address, need_type, priority,
			notes, source, latitude, longitude, formatted_address, status, created_at
		FROM requests WHERE id = ?`, id)

	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying request: %w", err)
	}
	return r, nil
}

func (s *SQLiteDB) FindDuplicateRequests(ctx context.Context, phone, email, excludeID string) ([]models.HelpRequest, error) {
	query := `
		SELECT id, resident_name, phone, email, address, need_type, priority,
			notes, source, latitude, longitude, formatted_address, status, created_at
		FROM requests
		WHERE id != ? AND (phone = ?`
	args := []any{excludeID, phone}
	if email != "" {
		query += ` OR email = ?`
		args = append(args, email)
	}
	query += `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying duplicates: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (s *SQLiteDB) ListRequests(ctx context.Context, f RequestFilter) ([]models.HelpRequest, error) {
	query := `
		SELECT id, resident_name, phone, email, address, need_type, priority,
			notes, source, latitude, longitude, formatted_address, status, created_at
		FROM requests`

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
	if f.NeedType != nil {
		conds = append(conds, "need_type = ?")
		args = append(args, string(*f.NeedType))
	}
	if f.Priority != nil {
		conds = append(conds, "priority = ?")
		args = append(args, string(*f.Priority))
	}
	if f.Source != nil {
		conds = append(conds, "source = ?")
		args = append(args, string(*f.Source))
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
		return nil, fmt.Errorf("error querying requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.HelpRequest, error) {
	var r models.HelpRequest
	var email, notes, formatted sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(&r.ID, &r.ResidentName, &r.Phone, &email, &r.Address,
		&r.NeedType, &r.Priority, &notes, &r.Source, &lat, &lng,
		&formatted, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	r.Email = email.String
	r.Notes = notes.String
	r.FormattedAddress = formatted.String
	if lat.Valid && lng.Valid {
		r.Location = &models.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &r, nil
}

func collectRequests(rows *sql.Rows) ([]models.HelpRequest, error) {
	requests := []models.HelpRequest{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning request: %w", err)
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
