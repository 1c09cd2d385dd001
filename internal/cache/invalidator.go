// Package cache signals invalidation of the rendered page cache shared by
// the web front ends.
package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InvalidationChannel carries the invalidated key to front ends holding an in-memory copy.
const InvalidationChannel = "cache:invalidate"

type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// RedisInvalidator drops the page key and announces it on InvalidationChannel.
type RedisInvalidator struct {
	client *redis.Client
	key    string
}

func NewRedisInvalidator(client *redis.Client, key string) *RedisInvalidator {
	return &RedisInvalidator{client: client, key: key}
}

func (r *RedisInvalidator) Invalidate(ctx context.Context) error {
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.key)
		p.Publish(ctx, InvalidationChannel, r.key)
		return nil
	})
	return err
}

// Nop is used when redis is not configured.
type Nop struct{}

func (Nop) Invalidate(context.Context) error { return nil }

// New picks the redis-backed invalidator when a client is available.
func New(client *redis.Client, key string) Invalidator {
	if client == nil {
		return Nop{}
	}
	return NewRedisInvalidator(client, key)
}
