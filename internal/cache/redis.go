package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisInvalidator deletes stale list keys from a shared redis instance.
type RedisInvalidator struct {
	client *redis.Client
}

func NewRedisInvalidator(ctx context.Context, addr, password string, db int) (*RedisInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisInvalidator{client: client}, nil
}

func (r *RedisInvalidator) Invalidate(ctx context.Context, entity Entity) error {
	keys := Keys(entity)
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", entity, err)
	}
	return nil
}

func (r *RedisInvalidator) Close() error {
	return r.client.Close()
}
