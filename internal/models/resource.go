package models

import "time"

type ResourceStatus string

const (
	ResourceOpen    ResourceStatus = "open"
	ResourceClosed  ResourceStatus = "closed"
	ResourcePlanned ResourceStatus = "planned"
)

// Resource is a distribution point, shelter, or similar site shown on the
// public map and announced through resource_opened/resource_closed alerts.
type Resource struct {
	ID        string
	Name      string
	Type      string // shelter, water, food, medical, charging, supplies
	Status    ResourceStatus
	Address   string
	Location  *Point
	Details   string
	UpdatedAt time.Time
	CreatedAt time.Time
}
