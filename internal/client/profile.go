package client

import (
	"context"
	"net/http"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

// ProfileService wraps the /profile endpoints.
type ProfileService struct {
	c *Client
}

func (s *ProfileService) GetMyProfile(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.c.do(ctx, http.MethodGet, "/profile/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileRequest carries only the fields being changed.
type UpdateProfileRequest struct {
	FirstName  *string   `json:"firstName,omitempty"`
	LastName   *string   `json:"lastName,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	Occupation *string   `json:"occupation,omitempty"`
	Education  *string   `json:"education,omitempty"`
	Interests  *[]string `json:"interests,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
}

func (s *ProfileService) UpdateMyProfile(ctx context.Context, req *UpdateProfileRequest) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.c.do(ctx, http.MethodPut, "/profile/me", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.c.do(ctx, http.MethodGet, "/profile/"+userID, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
