// Package matching implements the client-side compatibility scoring
// heuristic. The discovery endpoint normally returns a backend-computed
// matchPercentage; this package reproduces the same formula so it can run
// without the backend and so the feed builder can score candidates itself.
package matching

import (
	"math"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

// educationLevels is the fixed ordering used for the education similarity
// factor. Two levels are "similar" when their index distance is at most 1.
// A level not in the list indexes as -1, same as the original lookup.
var educationLevels = []string{
	"High School",
	"Some College",
	"Bachelor's Degree",
	"Master's Degree",
	"PhD/Doctorate",
}

const (
	interestWeight  = 40
	ageWeight       = 20
	educationWeight = 20
	locationWeight  = 20
)

// Score computes a 0-100 compatibility score between the viewer and a
// candidate from shared interests, age proximity and education similarity.
// It is deterministic for a fixed clock; Score uses the current time to
// derive ages.
func Score(viewer, candidate *domain.Profile) int {
	return ScoreAt(viewer, candidate, time.Now())
}

// ScoreAt is Score with an explicit evaluation time.
//
// The interest factor divides by the viewer's interest count, not the union:
// asymmetric on purpose, kept for parity with existing scores. The location
// factor is a flat 10 of its 20 weight; no distance is computed. Missing
// education contributes 0 while its weight still counts in the denominator.
// All three quirks are load-bearing for parity and must not be normalized.
func ScoreAt(viewer, candidate *domain.Profile, now time.Time) int {
	score := 0.0
	factors := 0

	// Shared interests.
	shared := SharedInterests(viewer, candidate)
	denom := len(viewer.Interests)
	if denom < 1 {
		denom = 1
	}
	score += float64(len(shared)) / float64(denom) * interestWeight
	factors += interestWeight

	// Age proximity: full points at zero gap, zero at ten years or more.
	ageDiff := domain.AgeAt(viewer.DateOfBirth, now) - domain.AgeAt(candidate.DateOfBirth, now)
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	score += math.Max(0, float64(10-ageDiff)/10) * ageWeight
	factors += ageWeight

	// Education similarity.
	if hasEducation(viewer) && hasEducation(candidate) {
		switch {
		case *viewer.Education == *candidate.Education:
			score += educationWeight
		case similarEducation(*viewer.Education, *candidate.Education):
			score += educationWeight / 2
		}
	}
	factors += educationWeight

	// Location proximity: flat base score, no distance calculation.
	score += locationWeight / 2
	factors += locationWeight

	pct := int(math.Round(score / float64(factors) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// SharedInterests returns the interest names present in both profiles,
// in the viewer's order. Comparison is case-sensitive.
func SharedInterests(viewer, candidate *domain.Profile) []string {
	common := make([]string, 0, len(viewer.Interests))
	for _, name := range viewer.Interests {
		for _, other := range candidate.Interests {
			if name == other {
				common = append(common, name)
				break
			}
		}
	}
	return common
}

func hasEducation(p *domain.Profile) bool {
	return p.Education != nil && *p.Education != ""
}

func similarEducation(a, b string) bool {
	ia, ib := educationIndex(a), educationIndex(b)
	d := ia - ib
	if d < 0 {
		d = -d
	}
	return d <= 1
}

func educationIndex(level string) int {
	for i, l := range educationLevels {
		if l == level {
			return i
		}
	}
	return -1
}
