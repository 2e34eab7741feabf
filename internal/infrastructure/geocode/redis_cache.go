package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "lzvcup:geocode:"

// RedisCache shares lookups between machines.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CoordinateCache = (*RedisCache)(nil)

func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (Lookup, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Lookup{}, false, nil
	}
	if err != nil {
		return Lookup{}, false, err
	}
	var v Lookup
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return Lookup{}, false, fmt.Errorf("decode cached lookup: %w", err)
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value Lookup) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode lookup: %w", err)
	}
	return c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
