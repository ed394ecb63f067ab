package repository

import (
	"context"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

// ProfileSearch narrows the candidate pool before scoring. Zero values mean
// "no constraint".
type ProfileSearch struct {
	Genders      []domain.Gender
	Interests    []string
	ExcludeUser  string
	VerifiedOnly bool
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, search ProfileSearch, limit, offset int) ([]*domain.Profile, error)
}

type PhotoRepository interface {
	Add(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	ListByProfile(ctx context.Context, profileID string) ([]domain.Photo, error)
	SetPrimary(ctx context.Context, profileID, photoID string) error
	Delete(ctx context.Context, id string) error
}
