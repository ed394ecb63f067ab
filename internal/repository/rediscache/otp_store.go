// Package rediscache holds the short-lived server state kept in Redis:
// pending OTP codes and the per-user last-swipe record backing the undo
// endpoint.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{client: client, ttl: ttl}
}

func otpKey(purpose, phoneNumber string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, phoneNumber)
}

// Save stores the hashed code, replacing any pending code for the same
// phone number and purpose.
func (s *OTPStore) Save(ctx context.Context, purpose, phoneNumber, codeHash string) error {
	return s.client.Set(ctx, otpKey(purpose, phoneNumber), codeHash, s.ttl).Err()
}

// Get returns the stored hash, or domain.ErrOTPExpired when no code is
// pending.
func (s *OTPStore) Get(ctx context.Context, purpose, phoneNumber string) (string, error) {
	hash, err := s.client.Get(ctx, otpKey(purpose, phoneNumber)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrOTPExpired
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (s *OTPStore) Delete(ctx context.Context, purpose, phoneNumber string) error {
	return s.client.Del(ctx, otpKey(purpose, phoneNumber)).Err()
}
