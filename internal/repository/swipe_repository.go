package repository

import (
	"context"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

type SwipeRepository interface {
	Create(ctx context.Context, swipe *domain.Swipe) error
	GetByUsers(ctx context.Context, swiperID, targetID string) (*domain.Swipe, error)
	Delete(ctx context.Context, id string) error
	// SwipedTargetIDs returns every user the swiper has already decided on,
	// for exclusion from the discovery feed.
	SwipedTargetIDs(ctx context.Context, swiperID string) ([]string, error)
	// LikesReceived returns positive swipes (like or super-like) targeting
	// the given user, newest first.
	LikesReceived(ctx context.Context, targetID string, limit, offset int) ([]*domain.Swipe, error)
}
