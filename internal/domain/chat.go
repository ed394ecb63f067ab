package domain

import "time"

type Conversation struct {
	ID            string     `json:"id" db:"id"`
	MatchID       string     `json:"matchId" db:"match_id"`
	User1ID       string     `json:"user1Id" db:"user1_id"`
	User2ID       string     `json:"user2Id" db:"user2_id"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty" db:"last_message_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

func (c *Conversation) HasUser(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

type Message struct {
	ID             string     `json:"id" db:"id"`
	ConversationID string     `json:"conversationId" db:"conversation_id"`
	SenderID       string     `json:"senderId" db:"sender_id"`
	Body           string     `json:"body" db:"body"`
	ReadAt         *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}
