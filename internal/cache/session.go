package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"Ieum/internal/model"
	"Ieum/storage/redis"
)

const sessionPrefix = "session"

// ErrSessionMissing is returned when a device has no stored session.
var ErrSessionMissing = fmt.Errorf("session not found")

// SessionRepository holds the logged-in snapshot per device id.
// The current-user read path goes through this object only.
type SessionRepository struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewSessionRepository(client goredis.Cmdable, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// DefaultSessionRepository wires the shared Redis client with a 30-day TTL.
func DefaultSessionRepository() *SessionRepository {
	return NewSessionRepository(redis.Client(), 30*24*time.Hour)
}

func (r *SessionRepository) Get(ctx context.Context, deviceID string) (*model.Session, error) {
	key := redis.Key(sessionPrefix, deviceID)

	raw, err := r.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, ErrSessionMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Set(ctx context.Context, deviceID string, session *model.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	key := redis.Key(sessionPrefix, deviceID)
	return r.client.Set(ctx, key, raw, r.ttl).Err()
}

func (r *SessionRepository) Clear(ctx context.Context, deviceID string) error {
	key := redis.Key(sessionPrefix, deviceID)
	return r.client.Del(ctx, key).Err()
}
