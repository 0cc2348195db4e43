package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const flushBatch = 200

// Redis stores msgpack payloads in a shared Redis under a key prefix.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed cache. An empty prefix uses DefaultPrefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (c *Redis) Get(ctx context.Context, key string, dst any) Lookup {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Lookup{}
		}
		return Lookup{Err: fmt.Errorf("failed to get cached value: %w", err)}
	}
	if err := decode(data, dst); err != nil {
		return Lookup{Err: err}
	}
	return Lookup{Hit: true}
}

func (c *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache value: %w", err)
	}
	return nil
}

// Flush removes every key under the prefix. Keys are collected with SCAN so
// the server is never blocked.
func (c *Redis) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", flushBatch).Iterator()
	batch := make([]string, 0, flushBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == flushBatch {
			if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}
	return nil
}

func (c *Redis) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Backend() string { return "redis" }
