package storage

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"radio-playlist/utils"
)

const defaultCacheSize = 1024

// MemoryCache is a bounded in-process LRU. It is lost on restart.
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

// Initialize the cache
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	utils.Logger.Debugf("Initializing cover art cache (size %d, ttl %s)", size, ttl)
	return &MemoryCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	value, found := c.lru.Get(key)
	return value, found, nil
}

func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.lru.Add(key, value)
	return nil
}

func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}
