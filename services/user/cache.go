package user

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is the slice of Redis the user service needs for session hashes and
// password reset codes. Get returns an empty string for a missing key.
type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// RedisCache adapts a redis client to the Cache interface.
type RedisCache struct {
	Client *redis.Client
}

func (r RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

func (r RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return value, err
}

func (r RedisCache) Del(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}
