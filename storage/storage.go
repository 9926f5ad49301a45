package storage

import (
	"context"
	"fmt"
	"time"

	"radio-playlist/metrics"
	"radio-playlist/utils"
)

// Cache stores resolved cover art URLs keyed by "artist - title". An empty
// value is a remembered miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// NewCache builds the cover art cache backend named by cacheType. "none"
// disables caching and returns a nil Cache.
func NewCache(cacheType, dsn string, size int, ttl time.Duration) (Cache, error) {
	var (
		cache Cache
		err   error
	)

	switch cacheType {
	case "none":
		return nil, nil
	case "memory", "":
		cacheType = "memory"
		cache = NewMemoryCache(size, ttl)
	case "redis":
		cache, err = NewRedisCache(dsn, ttl)
	case "sqlite":
		cache, err = NewSQLiteCache(dsn, ttl)
	case "postgres":
		cache, err = NewPostgresCache(dsn, ttl)
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cacheType)
	}
	if err != nil {
		return nil, err
	}

	utils.Logger.Debugf("Using %s cover art cache", cacheType)
	return &instrumented{Cache: cache, backend: cacheType}, nil
}

type instrumented struct {
	Cache
	backend string
}

func (i *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	value, found, err := i.Cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheRequests.WithLabelValues(i.backend, "error").Inc()
	case found:
		metrics.CacheRequests.WithLabelValues(i.backend, "hit").Inc()
	default:
		metrics.CacheRequests.WithLabelValues(i.backend, "miss").Inc()
	}
	return value, found, err
}
