package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/balwinder10003-code/ATTRAAH/internal/usecase"
)

// RedisEventDeduper drops redelivered chat events. SetNX makes the
// first-seen check atomic across replicas of the consumer.
type RedisEventDeduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisEventDeduper(rdb *redis.Client, ttl time.Duration) *RedisEventDeduper {
	return &RedisEventDeduper{rdb: rdb, ttl: ttl}
}

func (d *RedisEventDeduper) FirstSeen(ctx context.Context, eventID string) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, "evt:"+eventID, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("cache: dedupe event: %w", err)
	}
	return ok, nil
}

var _ usecase.EventDeduper = (*RedisEventDeduper)(nil)
