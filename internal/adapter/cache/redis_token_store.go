package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

// RedisActionTokens maps opaque callback tokens to review/dispatch
// actions. The indirection keeps order ids out of callback payloads
// entirely, and the TTL bounds how long a stale approve button stays live.
type RedisActionTokens struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisActionTokens(rdb *redis.Client, ttl time.Duration) *RedisActionTokens {
	return &RedisActionTokens{rdb: rdb, ttl: ttl}
}

func (s *RedisActionTokens) Bind(ctx context.Context, b usecase.ActionBinding) (string, error) {
	body, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("cache: marshal binding: %w", err)
	}
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, "act:"+token, body, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("cache: bind token: %w", err)
	}
	return token, nil
}

func (s *RedisActionTokens) Resolve(ctx context.Context, token string) (*usecase.ActionBinding, error) {
	val, err := s.rdb.Get(ctx, "act:"+token).Bytes()
	if err == redis.Nil {
		return nil, usecase.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache: resolve token: %w", err)
	}
	var b usecase.ActionBinding
	if err := json.Unmarshal(val, &b); err != nil {
		return nil, fmt.Errorf("cache: decode binding: %w", err)
	}
	return &b, nil
}

var _ usecase.ActionTokenStore = (*RedisActionTokens)(nil)
