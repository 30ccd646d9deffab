// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package cache wraps a ristretto cache as an in-process TTL cache for
// request-time lookups (tenant resolution, memberships). Reads are
// optimistic and may serve stale data up to the TTL; mutators invalidate
// synchronously.
package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

var _ CacheInterface = (*Cache)(nil)

type Cache struct {
	c *ristretto.Cache[string, interface{}]
}

// NewCache creates a ristretto-backed cache. maxCost bounds the total cost
// of cached entries; every entry here costs 1.
func NewCache(maxCost int64) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, interface{}]{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (c *Cache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.c.Get(key)
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) {
	c.c.SetWithTTL(key, value, 1, ttl)
	// Ristretto admits writes asynchronously; Wait makes the entry visible
	// to the next Get, which the read-your-writes contract relies on.
	c.c.Wait()
}

func (c *Cache) Delete(_ context.Context, key string) {
	c.c.Del(key)
}

func (c *Cache) Close() {
	c.c.Close()
}
