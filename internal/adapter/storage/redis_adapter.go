package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "invstrar:"

// RedisAdapter keeps each storage key as one Redis string so several
// processes can share a store. Writes are last-write-wins.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

func NewRedisAdapter(client *redis.Client, prefix string) *RedisAdapter {
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}
	return &RedisAdapter{client: client, prefix: prefix}
}

func (r *RedisAdapter) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (r *RedisAdapter) SetItem(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisAdapter) RemoveItem(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
