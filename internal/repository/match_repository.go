package repository

import (
	"context"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	ListActive(ctx context.Context, userID string) ([]*domain.Match, error)
	SetActive(ctx context.Context, id string, isActive bool) error
	SetConversation(ctx context.Context, id, conversationID string) error
}
