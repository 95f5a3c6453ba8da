package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS requests (
			id TEXT PRIMARY KEY,
			resident_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			address TEXT NOT NULL,
			need_type TEXT NOT NULL,
			priority TEXT NOT NULL,
			notes TEXT,
			source TEXT NOT NULL,
			latitude REAL,
			longitude REAL,
			formatted_address TEXT,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			alert_type TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			radius_km REAL NOT NULL,
			origin_lat REAL NOT NULL,
			origin_lng REAL NOT NULL,
			audience TEXT NOT NULL,
			dispatch_channel TEXT NOT NULL,
			dispatched_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS volunteers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			address TEXT,
			skills TEXT,
			alert_opt_in INTEGER NOT NULL DEFAULT 0,
			latitude REAL,
			longitude REAL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS resources (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			address TEXT,
			latitude REAL,
			longitude REAL,
			details TEXT,
			updated_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_roles (
			user_id TEXT PRIMARY KEY,
			role TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_requests_phone ON requests(phone);
		CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status);
		CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);
		CREATE INDEX IF NOT EXISTS idx_volunteers_opt_in ON volunteers(alert_opt_in);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// GetRole returns the role assigned to userID, or "" when none is assigned.
func (s *SQLiteDB) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := s.db.QueryRowContext(ctx, `SELECT role FROM user_roles WHERE user_id = ?`, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error querying role: %w", err)
	}
	return role, nil
}

// SetRole assigns a role to a user, replacing any existing assignment.
func (s *SQLiteDB) SetRole(ctx context.Context, userID, role string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET role = excluded.role`, userID, role)
	if err != nil {
		return fmt.Errorf("error setting role: %w", err)
	}
	return nil
}
