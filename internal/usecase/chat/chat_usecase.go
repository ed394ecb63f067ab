// Package chat serves the conversations opened by matches.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/repository"
)

const maxMessageLength = 2000

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
}

func NewChatUseCase(conversationRepo repository.ConversationRepository, messageRepo repository.MessageRepository) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	return uc.conversationRepo.ListByUser(ctx, userID)
}

// Messages returns a page of a conversation's history, newest first. Only
// members can read it.
func (uc *ChatUseCase) Messages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*domain.Message, error) {
	if _, err := uc.memberConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return uc.messageRepo.ListByConversation(ctx, conversationID, limit, offset)
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, conversationID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}
	if len(body) > maxMessageLength {
		return nil, fmt.Errorf("%w: message too long", domain.ErrInvalidInput)
	}

	if _, err := uc.memberConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Body:           body,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	if err := uc.conversationRepo.Touch(ctx, conversationID, time.Now()); err != nil {
		fmt.Printf("warning: failed to touch conversation %s: %v\n", conversationID, err)
	}
	return message, nil
}

func (uc *ChatUseCase) memberConversation(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasUser(userID) {
		return nil, domain.ErrNotConversationMember
	}
	return conversation, nil
}
