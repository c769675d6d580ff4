// Package cache is a small cache-aside layer over redis, used for the
// exhibition directory reads. A nil *Cache is a valid no-op cache, so the
// service layer does not branch on whether redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"expobook/pkg/utils"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	sf  singleflight.Group
}

// InitCache connects to redis. Returns nil (cache disabled) when no address
// is configured.
func InitCache(config utils.RedisConfig) (*Cache, error) {
	if config.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return &Cache{
		rdb: rdb,
		ttl: time.Duration(config.TTLSec) * time.Second,
	}, nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// GetOrSetJSON loads key from redis, or runs loader and stores its result.
// Concurrent misses for the same key share a single loader call.
func GetOrSetJSON[T any](ctx context.Context, c *Cache, key string, loader func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return loader(ctx)
	}

	if v, ok, err := getJSON[T](ctx, c, key); err == nil && ok {
		return v, nil
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok, err := getJSON[T](ctx, c, key); err == nil && ok {
			return v, nil
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		if b, err := json.Marshal(v); err == nil {
			c.rdb.Set(ctx, key, b, c.ttl)
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := vAny.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: unexpected value type for key %s", key)
	}

	return v, nil
}

func getJSON[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var zero T

	s, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	var out T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return zero, false, err
	}

	return out, true, nil
}

// Key builders for the exhibition directory.

func ExhibitionListKey() string {
	return "exhibitions:all"
}

func ExhibitionKey(id string) string {
	return "exhibitions:" + id
}
