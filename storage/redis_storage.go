package storage

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	defaultRedisURL = "redis://localhost:6379/0"
	redisKeyPrefix  = "radio-playlist:coverart:"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(dsn string, ttl time.Duration) (*RedisCache, error) {
	if dsn == "" {
		dsn = defaultRedisURL
	}
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value; a zero ttl keeps the key forever.
func (r *RedisCache) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
