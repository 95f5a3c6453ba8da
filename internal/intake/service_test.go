package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
	"github.com/franzenjb/hurricane-aid-production/internal/repository"
)

type mockRequestRepo struct {
	requests []models.HelpRequest
	addErr   error
	dupErr   error
}

func (m *mockRequestRepo) AddRequest(ctx context.Context, r *models.HelpRequest) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.requests = append(m.requests, *r)
	return nil
}

func (m *mockRequestRepo) GetRequestByID(ctx context.Context, id string) (*models.HelpRequest, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *mockRequestRepo) FindDuplicateRequests(ctx context.Context, phone, email, excludeID string) ([]models.HelpRequest, error) {
	if m.dupErr != nil {
		return nil, m.dupErr
	}
	var dups []models.HelpRequest
	for _, r := range m.requests {
		if r.ID == excludeID {
			continue
		}
		if r.Phone == phone || (email != "" && r.Email == email) {
			dups = append(dups, r)
		}
	}
	return dups, nil
}

func (m *mockRequestRepo) ListRequests(ctx context.Context, f repository.RequestFilter) ([]models.HelpRequest, error) {
	return m.requests, nil
}

type mockVolunteerRepo struct {
	volunteers []models.Volunteer
	addErr     error
}

func (m *mockVolunteerRepo) AddVolunteer(ctx context.Context, v *models.Volunteer) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.volunteers = append(m.volunteers, *v)
	return nil
}

func (m *mockVolunteerRepo) ListVolunteers(ctx context.Context, f repository.VolunteerFilter) ([]models.Volunteer, error) {
	return m.volunteers, nil
}

type stubGeocoder struct {
	result *models.GeocodeResult
	err    error
	calls  int
}

func (s *stubGeocoder) Name() string { return "stub" }

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	s.calls++
	return s.result, s.err
}

func validInput() RequestInput {
	return RequestInput{
		ResidentName: "Pat Doe",
		Phone:        "555-0100",
		Address:      "100 Ashley Dr, Tampa FL",
		NeedType:     models.NeedWater,
		Notes:        "no running water",
	}
}

func newTestService(reqs *mockRequestRepo, vols *mockVolunteerRepo, geo *stubGeocoder) *Service {
	return NewService(reqs, vols, geo, clockwork.NewFakeClockAt(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)), nil)
}

func TestSubmitRequest_PersistsExactlyOne(t *testing.T) {
	repo := &mockRequestRepo{}
	geo := &stubGeocoder{result: &models.GeocodeResult{Lat: 27.95, Lng: -82.46, FormattedAddress: "100 Ashley Dr, Tampa, FL"}}
	svc := newTestService(repo, &mockVolunteerRepo{}, geo)

	req, err := svc.SubmitRequest(context.Background(), validInput())
	require.NoError(t, err)
	require.Len(t, repo.requests, 1)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.StatusNew, req.Status)
	assert.Equal(t, models.SourceSelf, req.Source)
	require.NotNil(t, req.Location)
	assert.Equal(t, 27.95, req.Location.Lat)
	assert.Equal(t, "100 Ashley Dr, Tampa, FL", req.FormattedAddress)
	assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), req.CreatedAt)
}

func TestSubmitRequest_MissingFieldsRejectedWithoutSideEffects(t *testing.T) {
	cases := []RequestInput{
		{Phone: "555-0100", Address: "somewhere"},
		{ResidentName: "Pat", Address: "somewhere"},
		{ResidentName: "Pat", Phone: "555-0100"},
		{ResidentName: "  ", Phone: "555-0100", Address: "somewhere"},
	}

	for _, in := range cases {
		repo := &mockRequestRepo{}
		geo := &stubGeocoder{}
		svc := newTestService(repo, &mockVolunteerRepo{}, geo)

		_, err := svc.SubmitRequest(context.Background(), in)
		assert.ErrorIs(t, err, ErrMissingFields)
		assert.Empty(t, repo.requests, "rejected input must not persist")
		assert.Equal(t, 0, geo.calls, "rejected input must not geocode")
	}
}

func TestSubmitRequest_GeocodeFailureProceedsWithNilPoint(t *testing.T) {
	repo := &mockRequestRepo{}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{err: errors.New("all providers down")})

	req, err := svc.SubmitRequest(context.Background(), validInput())
	require.NoError(t, err)
	assert.Nil(t, req.Location)
	require.Len(t, repo.requests, 1)
}

func TestSubmitRequest_NotFoundGeocodeProceedsWithNilPoint(t *testing.T) {
	repo := &mockRequestRepo{}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{})

	req, err := svc.SubmitRequest(context.Background(), validInput())
	require.NoError(t, err)
	assert.Nil(t, req.Location)
}

func TestSubmitRequest_ClassifierUpgradesToUrgent(t *testing.T) {
	repo := &mockRequestRepo{}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{})

	in := validInput()
	in.Priority = models.PriorityLow
	in.Notes = "Elderly resident"

	req, err := svc.SubmitRequest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, req.Priority)
}

func TestSubmitRequest_DefaultsPriorityMedium(t *testing.T) {
	repo := &mockRequestRepo{}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{})

	in := validInput()
	in.Priority = ""
	in.Notes = "needs food"

	req, err := svc.SubmitRequest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, req.Priority)
}

func TestSubmitRequest_InvalidNeedTypeDefaultsOther(t *testing.T) {
	repo := &mockRequestRepo{}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{})

	in := validInput()
	in.NeedType = "helicopter"

	req, err := svc.SubmitRequest(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.NeedOther, req.NeedType)
}

func TestSubmitRequest_PersistenceFailureSurfaced(t *testing.T) {
	repo := &mockRequestRepo{addErr: errors.New("db down")}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{})

	_, err := svc.SubmitRequest(context.Background(), validInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingFields)
}

func TestSubmitRequest_DuplicateScanErrorDoesNotFailSubmission(t *testing.T) {
	repo := &mockRequestRepo{dupErr: errors.New("scan broke")}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{})

	_, err := svc.SubmitRequest(context.Background(), validInput())
	require.NoError(t, err)
	require.Len(t, repo.requests, 1)
}

func TestSubmitRequest_DuplicatesLoggedNotMerged(t *testing.T) {
	repo := &mockRequestRepo{}
	svc := newTestService(repo, &mockVolunteerRepo{}, &stubGeocoder{})

	_, err := svc.SubmitRequest(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.SubmitRequest(context.Background(), validInput())
	require.NoError(t, err)

	// Both records remain; the duplicate signal is advisory.
	assert.Len(t, repo.requests, 2)
}

func TestRegisterVolunteer(t *testing.T) {
	vols := &mockVolunteerRepo{}
	geo := &stubGeocoder{result: &models.GeocodeResult{Lat: 27.9, Lng: -82.4}}
	svc := newTestService(&mockRequestRepo{}, vols, geo)

	v, err := svc.RegisterVolunteer(context.Background(), VolunteerInput{
		Name:       "Sam Lee",
		Email:      "sam@example.org",
		Address:    "somewhere in Tampa",
		AlertOptIn: true,
	})
	require.NoError(t, err)
	require.Len(t, vols.volunteers, 1)
	assert.True(t, v.AlertOptIn)
	require.NotNil(t, v.Location)
}

func TestRegisterVolunteer_RequiresNameAndContact(t *testing.T) {
	svc := newTestService(&mockRequestRepo{}, &mockVolunteerRepo{}, &stubGeocoder{})

	_, err := svc.RegisterVolunteer(context.Background(), VolunteerInput{Name: "Sam Lee"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.RegisterVolunteer(context.Background(), VolunteerInput{Email: "x@y.org"})
	assert.ErrorIs(t, err, ErrMissingFields)
}
