package repository

import (
	"context"
	"testing"
	"time"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

// Tampa city center; the nearby points sit well inside 3 km, the far ones
// several kilometers out.
var origin = models.Point{Lat: 27.95, Lng: -82.46}

func addRequestAt(t *testing.T, db *SQLiteDB, id string, loc *models.Point, email string) {
	t.Helper()
	req := testRequest(id)
	req.Location = loc
	req.Email = email
	req.Phone = "555-" + id
	if err := db.AddRequest(context.Background(), req); err != nil {
		t.Fatalf("AddRequest failed: %v", err)
	}
}

func addVolunteerAt(t *testing.T, db *SQLiteDB, id string, loc *models.Point, optIn bool) {
	t.Helper()
	v := &models.Volunteer{
		ID:         id,
		Name:       "vol " + id,
		Email:      id + "@example.org",
		AlertOptIn: optIn,
		Location:   loc,
		CreatedAt:  time.Now(),
	}
	if err := db.AddVolunteer(context.Background(), v); err != nil {
		t.Fatalf("AddVolunteer failed: %v", err)
	}
}

func TestFindRecipientsInRadius_Residents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	addRequestAt(t, db, "near", &models.Point{Lat: 27.955, Lng: -82.46}, "near@x.org")  // ~0.6 km
	addRequestAt(t, db, "far", &models.Point{Lat: 28.05, Lng: -82.46}, "far@x.org")     // ~11 km
	addRequestAt(t, db, "edge", &models.Point{Lat: 27.97, Lng: -82.46}, "edge@x.org")   // ~2.2 km
	addRequestAt(t, db, "nogeom", nil, "nogeom@x.org")

	got, err := db.FindRecipientsInRadius(ctx, origin, 3000, models.AudienceResidents)
	if err != nil {
		t.Fatalf("FindRecipientsInRadius failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recipients within 3km, got %d", len(got))
	}
	for _, r := range got {
		if r.Audience != models.AudienceResidents {
			t.Errorf("expected residents audience, got %s", r.Audience)
		}
	}
}

func TestFindRecipientsInRadius_VolunteersRequireOptIn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	addVolunteerAt(t, db, "v_in", &models.Point{Lat: 27.955, Lng: -82.46}, true)
	addVolunteerAt(t, db, "v_optout", &models.Point{Lat: 27.955, Lng: -82.46}, false)
	addVolunteerAt(t, db, "v_far", &models.Point{Lat: 28.2, Lng: -82.46}, true)

	got, err := db.FindRecipientsInRadius(ctx, origin, 3000, models.AudienceVolunteers)
	if err != nil {
		t.Fatalf("FindRecipientsInRadius failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 opted-in volunteer in radius, got %d", len(got))
	}
	if got[0].ID != "v_in" {
		t.Errorf("expected v_in, got %s", got[0].ID)
	}
}

func TestFindRecipientsInRadius_BothIsUnion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	addRequestAt(t, db, "r1", &models.Point{Lat: 27.955, Lng: -82.46}, "r1@x.org")
	addVolunteerAt(t, db, "v1", &models.Point{Lat: 27.945, Lng: -82.46}, true)

	got, err := db.FindRecipientsInRadius(ctx, origin, 3000, models.AudienceBoth)
	if err != nil {
		t.Fatalf("FindRecipientsInRadius failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recipients for both, got %d", len(got))
	}
}

func TestFindRecipientsInRadius_EmptyIsNotError(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.FindRecipientsInRadius(context.Background(), origin, 500, models.AudienceBoth)
	if err != nil {
		t.Fatalf("FindRecipientsInRadius failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 recipients, got %d", len(got))
	}
}

func TestDistanceMeters(t *testing.T) {
	// One degree of latitude is about 111 km.
	a := models.Point{Lat: 27.0, Lng: -82.0}
	b := models.Point{Lat: 28.0, Lng: -82.0}
	d := distanceMeters(a, b)
	if d < 110000 || d > 112000 {
		t.Errorf("expected ~111km, got %f", d)
	}

	if d := distanceMeters(a, a); d != 0 {
		t.Errorf("expected zero distance to self, got %f", d)
	}
}
