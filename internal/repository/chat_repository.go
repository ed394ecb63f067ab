package repository

import (
	"context"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Conversation, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error)
}
