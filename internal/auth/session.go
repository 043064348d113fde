// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/washtrack/washtrack/internal/core"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps server-side sessions in redis: an opaque session ID
// maps to the user it was issued for, expiring after the configured TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Create(
	ctx context.Context,
	userID string,
) (string, error) {
	sessionID := uuid.New().String()
	key := sessionKeyPrefix + sessionID

	if err := s.client.Set(ctx, key, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return sessionID, nil
}

func (s *SessionStore) UserIDForSession(
	ctx context.Context,
	sessionID string,
) (string, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session lookup: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}

	return userID, nil
}

func (s *SessionStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}
