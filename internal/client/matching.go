package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

// MatchingService wraps the /matches endpoints. It satisfies the discovery
// session controller's CandidateSource and MatchService interfaces.
type MatchingService struct {
	c *Client
}

// Discover fetches a fresh queue of discovery candidates.
func (s *MatchingService) Discover(ctx context.Context, filters *domain.DiscoveryFilters) ([]*domain.DiscoveryCandidate, error) {
	endpoint := "/matches/discovery"
	if q := encodeFilters(filters); q != "" {
		endpoint += "?" + q
	}

	var candidates []*domain.DiscoveryCandidate
	if err := s.c.do(ctx, http.MethodGet, endpoint, nil, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func encodeFilters(filters *domain.DiscoveryFilters) string {
	if filters == nil {
		return ""
	}
	q := url.Values{}
	if filters.MinAge != nil {
		q.Set("minAge", strconv.Itoa(*filters.MinAge))
	}
	if filters.MaxAge != nil {
		q.Set("maxAge", strconv.Itoa(*filters.MaxAge))
	}
	if filters.MaxDistanceKm != nil {
		q.Set("distance", strconv.Itoa(*filters.MaxDistanceKm))
	}
	if len(filters.InterestedIn) > 0 {
		genders := make([]string, 0, len(filters.InterestedIn))
		for _, g := range filters.InterestedIn {
			genders = append(genders, string(g))
		}
		q.Set("interestedIn", strings.Join(genders, ","))
	}
	if len(filters.Interests) > 0 {
		q.Set("interests", strings.Join(filters.Interests, ","))
	}
	if filters.Verified != nil {
		q.Set("verified", strconv.FormatBool(*filters.Verified))
	}
	if filters.HasPhotos != nil {
		q.Set("hasPhotos", strconv.FormatBool(*filters.HasPhotos))
	}
	return q.Encode()
}

type swipeRequest struct {
	UserID string `json:"userId"`
}

func (s *MatchingService) Like(ctx context.Context, userID string) (*domain.MatchResult, error) {
	var result domain.MatchResult
	if err := s.c.do(ctx, http.MethodPost, "/matches/like", swipeRequest{UserID: userID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *MatchingService) Pass(ctx context.Context, userID string) error {
	return s.c.do(ctx, http.MethodPost, "/matches/pass", swipeRequest{UserID: userID}, nil)
}

func (s *MatchingService) SuperLike(ctx context.Context, userID string) (*domain.MatchResult, error) {
	var result domain.MatchResult
	if err := s.c.do(ctx, http.MethodPost, "/matches/super-like", swipeRequest{UserID: userID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Undo reverses the most recent swipe recorded server-side.
func (s *MatchingService) Undo(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPost, "/matches/undo", nil, nil)
}

// WhoLikedMe returns the likes received by the current user. Redaction of
// entries for non-premium viewers happens server-side; the client only
// renders what arrives.
func (s *MatchingService) WhoLikedMe(ctx context.Context) ([]*domain.LikeRecord, error) {
	var likes []*domain.LikeRecord
	if err := s.c.do(ctx, http.MethodGet, "/matches/who-liked-me", nil, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

func (s *MatchingService) Matches(ctx context.Context) ([]*domain.Match, error) {
	var matches []*domain.Match
	if err := s.c.do(ctx, http.MethodGet, "/matches/matches", nil, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *MatchingService) MatchByID(ctx context.Context, matchID string) (*domain.Match, error) {
	var match domain.Match
	if err := s.c.do(ctx, http.MethodGet, "/matches/"+matchID, nil, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MatchingService) Unmatch(ctx context.Context, matchID string) error {
	return s.c.do(ctx, http.MethodDelete, "/matches/"+matchID, nil, nil)
}
