package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisStore runs the same fixed-window algorithm against a shared Redis
// instance, so limits hold across multiple API instances. Expiry is handled
// by Redis TTLs; Sweep is a no-op.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Increment(key string, windowMS, now int64) (int, int64, error) {
	ctx := context.Background()
	redisKey := redisKeyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, 0, err
	}

	if count == 1 {
		resetTime := now + windowMS
		if err := s.client.PExpireAt(ctx, redisKey, time.UnixMilli(resetTime)).Err(); err != nil {
			return 0, 0, err
		}
		return int(count), resetTime, nil
	}

	ttl, err := s.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return 0, 0, err
	}
	if ttl < 0 {
		// Expiry was lost (e.g. key restored without TTL); reattach it.
		resetTime := now + windowMS
		if err := s.client.PExpireAt(ctx, redisKey, time.UnixMilli(resetTime)).Err(); err != nil {
			return 0, 0, err
		}
		return int(count), resetTime, nil
	}
	return int(count), now + ttl.Milliseconds(), nil
}

func (s *RedisStore) Sweep(now int64) {}
