package matching

import (
	"testing"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

var scoreClock = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testProfile(t *testing.T, birthYear int, education string, interests ...string) *domain.Profile {
	t.Helper()

	p := &domain.Profile{
		FirstName:   "test",
		DateOfBirth: time.Date(birthYear, time.January, 10, 0, 0, 0, 0, time.UTC),
		Gender:      domain.GenderOther,
		Interests:   interests,
	}
	if education != "" {
		p.Education = &education
	}
	return p
}

func TestScoreAt_SelfComparisonIsMaximum(t *testing.T) {
	p := testProfile(t, 1995, "Bachelor's Degree", "hiking", "cooking", "jazz")

	got := ScoreAt(p, p, scoreClock)

	// Full interest overlap (40) + zero age gap (20) + identical education
	// (20) + the flat location base (10) over a denominator of 100. The
	// location placeholder caps the maximum at 90, not 100.
	if got != 90 {
		t.Errorf("self comparison: got %d, want 90", got)
	}
}

func TestScoreAt_DisjointInterestsContributeZero(t *testing.T) {
	viewer := testProfile(t, 1995, "Bachelor's Degree", "hiking", "cooking")
	candidate := testProfile(t, 1995, "Bachelor's Degree", "surfing", "chess")

	got := ScoreAt(viewer, candidate, scoreClock)

	// 0 (interests) + 20 (age) + 20 (education) + 10 (location).
	if got != 50 {
		t.Errorf("disjoint interests: got %d, want 50", got)
	}
}

func TestScoreAt_AgeFactorLinearDecay(t *testing.T) {
	tests := []struct {
		ageDiff int
		want    int
	}{
		{0, 90},  // full 20 age points
		{5, 80},  // 10 age points
		{9, 72},  // 2 age points
		{10, 70}, // zero at a ten-year gap
		{15, 70}, // clamped, never negative
	}

	for _, tt := range tests {
		viewer := testProfile(t, 1995, "Bachelor's Degree", "hiking")
		candidate := testProfile(t, 1995-tt.ageDiff, "Bachelor's Degree", "hiking")

		if got := ScoreAt(viewer, candidate, scoreClock); got != tt.want {
			t.Errorf("age diff %d: got %d, want %d", tt.ageDiff, got, tt.want)
		}
	}
}

func TestScoreAt_EducationSimilarity(t *testing.T) {
	tests := []struct {
		name      string
		viewerEdu string
		candEdu   string
		want      int
	}{
		{"exact match", "Master's Degree", "Master's Degree", 90},
		{"adjacent levels", "Bachelor's Degree", "Master's Degree", 80},
		{"distant levels", "High School", "PhD/Doctorate", 70},
		{"viewer missing", "", "Master's Degree", 70},
		{"candidate missing", "Master's Degree", "", 70},
		{"both missing", "", "", 70},
		// Levels outside the known list both index as -1 and therefore
		// count as similar. Faithful to the original lookup behavior.
		{"both unknown levels", "Trade School", "Bootcamp", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := testProfile(t, 1995, tt.viewerEdu, "hiking")
			candidate := testProfile(t, 1995, tt.candEdu, "hiking")

			if got := ScoreAt(viewer, candidate, scoreClock); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAt_ViewerWithoutInterests(t *testing.T) {
	viewer := testProfile(t, 1995, "High School")
	candidate := testProfile(t, 1995, "High School", "hiking")

	// Empty viewer interest list must not divide by zero.
	if got := ScoreAt(viewer, candidate, scoreClock); got != 50 {
		t.Errorf("got %d, want 50", got)
	}
}

func TestScoreAt_AsymmetricInterestDenominator(t *testing.T) {
	// The denominator is the viewer's interest count only. Scoring the same
	// pair from the other side gives a different result.
	viewer := testProfile(t, 1995, "High School", "hiking")
	candidate := testProfile(t, 1995, "High School", "hiking", "chess", "surfing", "jazz")

	forward := ScoreAt(viewer, candidate, scoreClock)  // 1/1 shared
	backward := ScoreAt(candidate, viewer, scoreClock) // 1/4 shared

	if forward != 90 {
		t.Errorf("forward: got %d, want 90", forward)
	}
	if backward != 60 {
		t.Errorf("backward: got %d, want 60", backward)
	}
}

func TestSharedInterests_KeepsViewerOrder(t *testing.T) {
	viewer := testProfile(t, 1995, "", "jazz", "hiking", "cooking")
	candidate := testProfile(t, 1995, "", "cooking", "jazz")

	got := SharedInterests(viewer, candidate)
	want := []string{"jazz", "cooking"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSharedInterests_CaseSensitive(t *testing.T) {
	viewer := testProfile(t, 1995, "", "Hiking")
	candidate := testProfile(t, 1995, "", "hiking")

	if got := SharedInterests(viewer, candidate); len(got) != 0 {
		t.Errorf("expected no shared interests across case, got %v", got)
	}
}

func TestAgeAt_BirthdayBoundary(t *testing.T) {
	dob := time.Date(1995, time.June, 20, 0, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC)
	if got := domain.AgeAt(dob, dayBefore); got != 29 {
		t.Errorf("day before birthday: got %d, want 29", got)
	}

	onBirthday := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	if got := domain.AgeAt(dob, onBirthday); got != 30 {
		t.Errorf("on birthday: got %d, want 30", got)
	}
}
