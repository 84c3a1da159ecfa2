package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	SessionTTL    = 24 * time.Hour
	SessionCookie = "quill_session"
)

// Sessions is the server-side session state keyed by an opaque session id.
type Sessions interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore wraps Redis for session management.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

// Create stores a new session mapping sessionID -> userID.
func (s *RedisSessionStore) Create(ctx context.Context, userID string) (string, error) {
	sid := uuid.New().String()
	err := s.rdb.Set(ctx, "session:"+sid, userID, SessionTTL).Err()
	return sid, err
}

// Get returns the userID for a session, or "" if not found / expired.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	val, err := s.rdb.Get(ctx, "session:"+sessionID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Delete removes a session.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, "session:"+sessionID).Err()
}
