// Package discoveryfeed builds the ranked candidate feed a user swipes
// through: everyone they have not decided on yet, filtered by their
// preferences and ordered by compatibility.
package discoveryfeed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/matching"
	"github.com/sparkmatch/sparkmatch-backend/internal/metrics"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

// candidatePoolSize caps how many profiles are pulled from storage before
// scoring. Filtering and ranking happen in memory on this pool.
const candidatePoolSize = 200

type DiscoveryUseCase struct {
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
}

func NewDiscoveryUseCase(profileRepo repository.ProfileRepository, swipeRepo repository.SwipeRepository) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
	}
}

// Discover returns candidates for the viewer, best match first. Profiles
// the viewer already swiped on and the viewer's own profile never appear.
func (uc *DiscoveryUseCase) Discover(ctx context.Context, userID string, filters domain.DiscoveryFilters, limit, offset int) ([]domain.DiscoveryCandidate, error) {
	timer := prometheus.NewTimer(metrics.DiscoveryDuration)
	defer timer.ObserveDuration()

	viewer, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading viewer profile: %w", err)
	}

	swiped, err := uc.swipeRepo.SwipedTargetIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading swipe history: %w", err)
	}
	seen := make(map[string]struct{}, len(swiped))
	for _, id := range swiped {
		seen[id] = struct{}{}
	}

	search := repository.ProfileSearch{
		Genders:     filters.InterestedIn,
		Interests:   filters.Interests,
		ExcludeUser: userID,
	}
	if filters.Verified != nil && *filters.Verified {
		search.VerifiedOnly = true
	}

	pool, err := uc.profileRepo.Search(ctx, search, candidatePoolSize, 0)
	if err != nil {
		return nil, fmt.Errorf("searching profiles: %w", err)
	}

	now := time.Now()
	candidates := make([]domain.DiscoveryCandidate, 0, len(pool))
	for _, profile := range pool {
		if _, ok := seen[profile.UserID]; ok {
			continue
		}
		if !passesFilters(viewer, profile, filters, now) {
			continue
		}

		candidate := domain.DiscoveryCandidate{
			Profile:         *profile,
			MatchPercentage: matching.ScoreAt(viewer, profile, now),
			CommonInterests: matching.SharedInterests(viewer, profile),
		}
		if d, ok := distanceBetween(viewer, profile); ok {
			candidate.DistanceKm = &d
		}
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchPercentage > candidates[j].MatchPercentage
	})

	if offset >= len(candidates) {
		return []domain.DiscoveryCandidate{}, nil
	}
	candidates = candidates[offset:]
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func passesFilters(viewer, profile *domain.Profile, filters domain.DiscoveryFilters, now time.Time) bool {
	age := domain.AgeAt(profile.DateOfBirth, now)
	if filters.MinAge != nil && age < *filters.MinAge {
		return false
	}
	if filters.MaxAge != nil && age > *filters.MaxAge {
		return false
	}
	if filters.HasPhotos != nil && *filters.HasPhotos && len(profile.Photos) == 0 {
		return false
	}
	if filters.MaxDistanceKm != nil {
		d, ok := distanceBetween(viewer, profile)
		if !ok || d > float64(*filters.MaxDistanceKm) {
			return false
		}
	}
	return true
}

func distanceBetween(a, b *domain.Profile) (float64, bool) {
	if a.Latitude == nil || a.Longitude == nil || b.Latitude == nil || b.Longitude == nil {
		return 0, false
	}
	return DistanceKm(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude), true
}
