package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/franzenjb/hurricane-aid-production/internal/classify"
	"github.com/franzenjb/hurricane-aid-production/internal/geocode"
	"github.com/franzenjb/hurricane-aid-production/internal/models"
	"github.com/franzenjb/hurricane-aid-production/internal/observability"
	"github.com/franzenjb/hurricane-aid-production/internal/repository"
)

// ErrMissingFields is returned for submissions missing a required field.
// No side effects have occurred when it is returned.
var ErrMissingFields = errors.New("missing required fields")

type RequestInput struct {
	ResidentName string
	Phone        string
	Email        string
	Address      string
	NeedType     models.NeedType
	Priority     models.Priority
	Notes        string
	Source       models.SourceChannel
}

type VolunteerInput struct {
	Name       string
	Phone      string
	Email      string
	Address    string
	Skills     string
	AlertOptIn bool
}

// Service handles intake of help requests and volunteer registrations:
// validate, geocode (best effort), classify, persist, then an advisory
// duplicate scan.
type Service struct {
	requests   repository.RequestRepository
	volunteers repository.VolunteerRepository
	geocoder   geocode.Geocoder
	clock      clockwork.Clock
	metrics    *observability.Metrics
}

func NewService(requests repository.RequestRepository, volunteers repository.VolunteerRepository, geocoder geocode.Geocoder, clock clockwork.Clock, metrics *observability.Metrics) *Service {
	return &Service{
		requests:   requests,
		volunteers: volunteers,
		geocoder:   geocoder,
		clock:      clock,
		metrics:    metrics,
	}
}

// SubmitRequest persists exactly one help request per successful invocation.
// Geocoding failure is tolerated: the record is saved without coordinates.
func (s *Service) SubmitRequest(ctx context.Context, in RequestInput) (*models.HelpRequest, error) {
	if strings.TrimSpace(in.ResidentName) == "" ||
		strings.TrimSpace(in.Phone) == "" ||
		strings.TrimSpace(in.Address) == "" {
		return nil, ErrMissingFields
	}

	needType := in.NeedType
	if !models.ValidNeedType(needType) {
		needType = models.NeedOther
	}
	source := in.Source
	if source == "" {
		source = models.SourceSelf
	}

	req := &models.HelpRequest{
		ID:           uuid.NewString(),
		ResidentName: in.ResidentName,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		NeedType:     needType,
		Priority:     classify.Classify(in.Priority, needType, in.Notes),
		Notes:        in.Notes,
		Source:       source,
		Status:       models.StatusNew,
		CreatedAt:    s.clock.Now().UTC(),
	}

	if loc := s.geocodeAddress(ctx, in.Address); loc != nil {
		req.Location = &models.Point{Lat: loc.Lat, Lng: loc.Lng}
		req.FormattedAddress = loc.FormattedAddress
	}

	if err := s.requests.AddRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RequestsSubmitted.Inc()
	}

	s.scanForDuplicates(ctx, req)

	return req, nil
}

// RegisterVolunteer validates and persists one volunteer record.
func (s *Service) RegisterVolunteer(ctx context.Context, in VolunteerInput) (*models.Volunteer, error) {
	if strings.TrimSpace(in.Name) == "" ||
		(strings.TrimSpace(in.Phone) == "" && strings.TrimSpace(in.Email) == "") {
		return nil, ErrMissingFields
	}

	v := &models.Volunteer{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Address:    in.Address,
		Skills:     in.Skills,
		AlertOptIn: in.AlertOptIn,
		CreatedAt:  s.clock.Now().UTC(),
	}

	if in.Address != "" {
		if loc := s.geocodeAddress(ctx, in.Address); loc != nil {
			v.Location = &models.Point{Lat: loc.Lat, Lng: loc.Lng}
		}
	}

	if err := s.volunteers.AddVolunteer(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to save volunteer: %w", err)
	}

	if s.metrics != nil {
		s.metrics.VolunteersSignedUp.Inc()
	}

	return v, nil
}

func (s *Service) geocodeAddress(ctx context.Context, address string) *models.GeocodeResult {
	res, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		// The chain already absorbs provider errors; anything surfacing here
		// is still not fatal to intake.
		slog.Warn("geocoding failed, proceeding without coordinates", "error", err)
		return nil
	}
	if res == nil {
		slog.Info("address not geocodable", "address", address)
	}
	return res
}

// scanForDuplicates logs possible duplicates sharing the phone or email.
// Advisory only: nothing is merged or rejected, and scan errors never fail
// the submission.
func (s *Service) scanForDuplicates(ctx context.Context, req *models.HelpRequest) {
	dups, err := s.requests.FindDuplicateRequests(ctx, req.Phone, req.Email, req.ID)
	if err != nil {
		slog.Warn("duplicate scan failed", "request_id", req.ID, "error", err)
		return
	}
	if len(dups) > 0 {
		ids := make([]string, 0, len(dups))
		for _, d := range dups {
			ids = append(ids, d.ID)
		}
		slog.Info("potential duplicate request", "request_id", req.ID, "matches", ids)
	}
}
