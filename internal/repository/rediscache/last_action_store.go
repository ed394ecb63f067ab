package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/match"
)

// lastActionTTL bounds how long a swipe stays undoable. One slot per user,
// overwritten by every new swipe.
const lastActionTTL = 24 * time.Hour

type LastActionStore struct {
	client *redis.Client
}

func NewLastActionStore(client *redis.Client) *LastActionStore {
	return &LastActionStore{client: client}
}

func lastActionKey(userID string) string {
	return "lastswipe:" + userID
}

func (s *LastActionStore) Save(ctx context.Context, userID string, record match.LastAction) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, lastActionKey(userID), payload, lastActionTTL).Err()
}

// Take atomically reads and clears the record, so a swipe can be undone at
// most once.
func (s *LastActionStore) Take(ctx context.Context, userID string) (*match.LastAction, error) {
	payload, err := s.client.GetDel(ctx, lastActionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNothingToUndo
	}
	if err != nil {
		return nil, err
	}

	var record match.LastAction
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *LastActionStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, lastActionKey(userID)).Err()
}
