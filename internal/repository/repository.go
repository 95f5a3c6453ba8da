package repository

import (
	"context"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

// RequestFilter narrows request listings. Only whitelisted columns are
// filterable; the export handler maps caller filters onto these fields.
type RequestFilter struct {
	IDs      []string
	Status   *models.RequestStatus
	NeedType *models.NeedType
	Priority *models.Priority
	Source   *models.SourceChannel
	Limit    int
}

type VolunteerFilter struct {
	IDs        []string
	AlertOptIn *bool
	Limit      int
}

type ResourceFilter struct {
	IDs    []string
	Status *models.ResourceStatus
	Type   *string
	Limit  int
}

type AlertFilter struct {
	Limit int
}

type RequestRepository interface {
	AddRequest(ctx context.Context, r *models.HelpRequest) error
	GetRequestByID(ctx context.Context, id string) (*models.HelpRequest, error)
	// FindDuplicateRequests returns existing requests sharing the phone or a
	// non-empty email, excluding excludeID. Advisory only.
	FindDuplicateRequests(ctx context.Context, phone, email, excludeID string) ([]models.HelpRequest, error)
	ListRequests(ctx context.Context, f RequestFilter) ([]models.HelpRequest, error)
}

type AlertRepository interface {
	AddAlert(ctx context.Context, a *models.Alert) error
	GetAlertByID(ctx context.Context, id string) (*models.Alert, error)
	ListAlerts(ctx context.Context, f AlertFilter) ([]models.Alert, error)
}

type VolunteerRepository interface {
	AddVolunteer(ctx context.Context, v *models.Volunteer) error
	ListVolunteers(ctx context.Context, f VolunteerFilter) ([]models.Volunteer, error)
}

type ResourceRepository interface {
	AddResource(ctx context.Context, r *models.Resource) error
	ListResources(ctx context.Context, f ResourceFilter) ([]models.Resource, error)
}

// RecipientRepository is the spatial query contract: contactable parties
// within radiusMeters of origin, filtered by audience. An empty result is not
// an error.
type RecipientRepository interface {
	FindRecipientsInRadius(ctx context.Context, origin models.Point, radiusMeters float64, audience models.Audience) ([]models.Recipient, error)
}

// RoleRepository resolves the role assigned to an externally-authenticated
// user. Empty string means no role.
type RoleRepository interface {
	GetRole(ctx context.Context, userID string) (string, error)
}
