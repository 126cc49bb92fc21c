package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alirk24/sejam-porfiling/internal/token"
)

const redisTokenKey = "sejam:access_token"

// RedisStore keeps the cached token in Redis. A single SET is atomic, and the
// key TTL tracks the token expiry so stale tokens evict themselves.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed token store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type redisToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *RedisStore) Current(ctx context.Context) (*token.AccessToken, error) {
	data, err := s.client.Get(ctx, redisTokenKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, token.ErrNotFound
		}
		return nil, fmt.Errorf("find current token: %w", err)
	}

	var rt redisToken
	if err := json.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("decode cached token: %w", err)
	}
	return &token.AccessToken{
		Token:     rt.Token,
		ExpiresAt: rt.ExpiresAt,
		CreatedAt: rt.CreatedAt,
	}, nil
}

func (s *RedisStore) Replace(ctx context.Context, tok *token.AccessToken) error {
	data, err := json.Marshal(redisToken{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		CreatedAt: tok.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	ttl := time.Until(tok.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, redisTokenKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("replace token: %w", err)
	}
	return nil
}
