package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore remembers the last token issued to each email.
type SessionStore interface {
	Save(ctx context.Context, email, token string, ttl time.Duration) error
	// Get returns ErrSessionInvalid when no session exists for email.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(email string) string {
	return "session:" + email
}

func (s *RedisSessionStore) Save(ctx context.Context, email, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(email), token, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, email string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionInvalid
		}
		return "", err
	}
	return token, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, sessionKey(email)).Err()
}
