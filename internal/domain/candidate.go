package domain

type SwipeAction string

const (
	ActionLike      SwipeAction = "LIKE"
	ActionPass      SwipeAction = "PASS"
	ActionSuperLike SwipeAction = "SUPER_LIKE"
)

func (a SwipeAction) Valid() bool {
	switch a {
	case ActionLike, ActionPass, ActionSuperLike:
		return true
	}
	return false
}

// DiscoveryCandidate is a profile as presented in the discovery queue:
// augmented with the viewer-relative distance, the compatibility score and
// the interests held in common. Immutable once issued to a session.
type DiscoveryCandidate struct {
	Profile
	DistanceKm      *float64 `json:"distance,omitempty"`
	MatchPercentage int      `json:"matchPercentage"`
	CommonInterests []string `json:"commonInterests"`
}

type DiscoveryFilters struct {
	MinAge        *int     `json:"minAge,omitempty"`
	MaxAge        *int     `json:"maxAge,omitempty"`
	MaxDistanceKm *int     `json:"distance,omitempty"`
	InterestedIn  []Gender `json:"interestedIn,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Verified      *bool    `json:"verified,omitempty"`
	HasPhotos     *bool    `json:"hasPhotos,omitempty"`
}
