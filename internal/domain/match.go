package domain

import "time"

type Swipe struct {
	ID        string      `json:"id" db:"id"`
	SwiperID  string      `json:"swiperId" db:"swiper_id"`
	TargetID  string      `json:"targetId" db:"target_id"`
	Action    SwipeAction `json:"action" db:"action"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}

func (s *Swipe) IsPositive() bool {
	return s.Action == ActionLike || s.Action == ActionSuperLike
}

type Match struct {
	ID             string     `json:"id" db:"id"`
	User1ID        string     `json:"user1Id" db:"user1_id"`
	User2ID        string     `json:"user2Id" db:"user2_id"`
	IsActive       bool       `json:"isActive" db:"is_active"`
	ConversationID *string    `json:"conversationId,omitempty" db:"conversation_id"`
	LastActivity   *time.Time `json:"lastActivity,omitempty" db:"last_activity"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

func (m *Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID string) (string, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return "", false
}

// MatchResult is the outcome of a like or super-like decision. Match is
// present iff IsMatch is true. A pass never produces a match.
type MatchResult struct {
	IsMatch bool   `json:"isMatch"`
	Match   *Match `json:"match,omitempty"`
	Message string `json:"message"`
}

// LikeRecord is one entry of the who-liked-me list. Entries are redacted by
// the server for non-premium viewers: IsVisible is false and Profile is nil.
type LikeRecord struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Profile   *Profile    `json:"profile,omitempty"`
	LikeType  SwipeAction `json:"likeType"`
	IsVisible bool        `json:"isVisible"`
	CreatedAt time.Time   `json:"createdAt"`
}
