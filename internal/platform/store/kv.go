package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	perr "labqc/internal/platform/errors"
)

const defaultDialTimeout = 5 * time.Second

func openKV(ctx context.Context, cfg RedisConfig) (*redisKV, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis addr is required")
	}
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	c := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dial,
	})

	pctx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()
	if err := c.Ping(pctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &redisKV{c: c}, nil
}

type redisKV struct{ c *redis.Client }

var _ KV = (*redisKV)(nil)

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, perr.ErrNotFound
	}
	return b, err
}

func (r *redisKV) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.c.Set(ctx, key, val, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.c.Del(ctx, keys...).Err()
}

// Incr bumps a counter, creating it at 1
func (r *redisKV) Incr(ctx context.Context, key string) (int64, error) {
	return r.c.Incr(ctx, key).Result()
}

func (r *redisKV) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *redisKV) Close() error { return r.c.Close() }
