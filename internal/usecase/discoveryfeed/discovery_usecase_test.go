package discoveryfeed

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile // by user id
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeProfileRepo) Search(_ context.Context, search repository.ProfileSearch, limit, _ int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range f.profiles {
		if p.UserID == search.ExcludeUser {
			continue
		}
		if len(search.Genders) > 0 && !containsGender(search.Genders, p.Gender) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func containsGender(genders []domain.Gender, g domain.Gender) bool {
	for _, want := range genders {
		if want == g {
			return true
		}
	}
	return false
}

type fakeSwipeLog struct {
	swiped []string
}

func (f *fakeSwipeLog) Create(_ context.Context, _ *domain.Swipe) error { return nil }

func (f *fakeSwipeLog) GetByUsers(_ context.Context, _, _ string) (*domain.Swipe, error) {
	return nil, nil
}

func (f *fakeSwipeLog) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeSwipeLog) SwipedTargetIDs(_ context.Context, _ string) ([]string, error) {
	return f.swiped, nil
}

func (f *fakeSwipeLog) LikesReceived(_ context.Context, _ string, _, _ int) ([]*domain.Swipe, error) {
	return nil, nil
}

func dob(age int) time.Time {
	return time.Now().AddDate(-age, 0, -1)
}

func feedProfile(userID string, age int, interests ...string) *domain.Profile {
	return &domain.Profile{
		ID:          "p-" + userID,
		UserID:      userID,
		FirstName:   userID,
		DateOfBirth: dob(age),
		Gender:      domain.GenderFemale,
		Interests:   interests,
	}
}

func newFeed(viewer *domain.Profile, candidates ...*domain.Profile) (*DiscoveryUseCase, *fakeSwipeLog) {
	profiles := &fakeProfileRepo{profiles: map[string]*domain.Profile{viewer.UserID: viewer}}
	for _, c := range candidates {
		profiles.profiles[c.UserID] = c
	}
	swipes := &fakeSwipeLog{}
	return NewDiscoveryUseCase(profiles, swipes), swipes
}

func TestDiscover_RanksByCompatibility(t *testing.T) {
	viewer := feedProfile("viewer", 28, "hiking", "jazz", "cooking")
	uc, _ := newFeed(viewer,
		feedProfile("none", 28),
		feedProfile("all", 28, "hiking", "jazz", "cooking"),
		feedProfile("some", 28, "hiking"),
	)

	feed, err := uc.Discover(context.Background(), "viewer", domain.DiscoveryFilters{}, 10, 0)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("got %d candidates, want 3", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].MatchPercentage > feed[i-1].MatchPercentage {
			t.Fatalf("feed not sorted: %d%% after %d%%", feed[i].MatchPercentage, feed[i-1].MatchPercentage)
		}
	}
	if feed[0].UserID != "all" {
		t.Errorf("best candidate = %s, want the full-overlap profile", feed[0].UserID)
	}
	if len(feed[0].CommonInterests) != 3 {
		t.Errorf("common interests = %v, want all three", feed[0].CommonInterests)
	}
}

func TestDiscover_ExcludesAlreadySwiped(t *testing.T) {
	viewer := feedProfile("viewer", 28, "hiking")
	uc, swipes := newFeed(viewer,
		feedProfile("fresh", 28, "hiking"),
		feedProfile("decided", 28, "hiking"),
	)
	swipes.swiped = []string{"decided"}

	feed, err := uc.Discover(context.Background(), "viewer", domain.DiscoveryFilters{}, 10, 0)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(feed) != 1 || feed[0].UserID != "fresh" {
		t.Fatalf("feed = %v, want only the undecided profile", feedIDs(feed))
	}
}

func TestDiscover_AgeFilter(t *testing.T) {
	viewer := feedProfile("viewer", 30)
	uc, _ := newFeed(viewer,
		feedProfile("young", 21),
		feedProfile("inRange", 29),
		feedProfile("old", 45),
	)

	minAge, maxAge := 25, 35
	feed, err := uc.Discover(context.Background(), "viewer", domain.DiscoveryFilters{MinAge: &minAge, MaxAge: &maxAge}, 10, 0)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(feed) != 1 || feed[0].UserID != "inRange" {
		t.Fatalf("feed = %v, want only the in-range profile", feedIDs(feed))
	}
}

func TestDiscover_DistanceFilterAndAnnotation(t *testing.T) {
	lat, lon := 55.7558, 37.6173 // Moscow
	nearLat, nearLon := 55.7887, 37.7497
	farLat, farLon := 59.9311, 30.3609 // Saint Petersburg

	viewer := feedProfile("viewer", 28)
	viewer.Latitude, viewer.Longitude = &lat, &lon
	near := feedProfile("near", 28)
	near.Latitude, near.Longitude = &nearLat, &nearLon
	far := feedProfile("far", 28)
	far.Latitude, far.Longitude = &farLat, &farLon
	nowhere := feedProfile("nowhere", 28)

	uc, _ := newFeed(viewer, near, far, nowhere)

	maxDistance := 50
	feed, err := uc.Discover(context.Background(), "viewer", domain.DiscoveryFilters{MaxDistanceKm: &maxDistance}, 10, 0)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(feed) != 1 || feed[0].UserID != "near" {
		t.Fatalf("feed = %v, want only the nearby profile", feedIDs(feed))
	}
	if feed[0].DistanceKm == nil {
		t.Fatal("nearby candidate must carry a distance")
	}
	if *feed[0].DistanceKm <= 0 || *feed[0].DistanceKm > 50 {
		t.Errorf("distance = %.1f km, want within (0, 50]", *feed[0].DistanceKm)
	}
}

func TestDiscover_Pagination(t *testing.T) {
	viewer := feedProfile("viewer", 28, "hiking")
	uc, _ := newFeed(viewer,
		feedProfile("a", 28, "hiking"),
		feedProfile("b", 28, "hiking"),
		feedProfile("c", 28, "hiking"),
	)

	page, err := uc.Discover(context.Background(), "viewer", domain.DiscoveryFilters{}, 2, 0)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("first page has %d candidates, want 2", len(page))
	}

	page, err = uc.Discover(context.Background(), "viewer", domain.DiscoveryFilters{}, 2, 2)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("second page has %d candidates, want 1", len(page))
	}

	page, err = uc.Discover(context.Background(), "viewer", domain.DiscoveryFilters{}, 2, 10)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("past-the-end page has %d candidates, want 0", len(page))
	}
}

func TestDistanceKm(t *testing.T) {
	// Moscow to Saint Petersburg, roughly 634 km.
	d := DistanceKm(55.7558, 37.6173, 59.9311, 30.3609)
	if math.Abs(d-634) > 10 {
		t.Errorf("DistanceKm = %.1f, want about 634", d)
	}
	if DistanceKm(55.7558, 37.6173, 55.7558, 37.6173) != 0 {
		t.Error("distance to self must be zero")
	}
}

func feedIDs(feed []domain.DiscoveryCandidate) []string {
	ids := make([]string, len(feed))
	for i, c := range feed {
		ids[i] = c.UserID
	}
	return ids
}
