package models

import "time"

// Volunteer is a registered helper. Only opted-in, geocoded volunteers are
// reachable through radius alerts.
type Volunteer struct {
	ID         string
	Name       string
	Phone      string
	Email      string
	Address    string
	Skills     string
	AlertOptIn bool
	Location   *Point
	CreatedAt  time.Time
}
