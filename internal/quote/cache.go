package quote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"tradesim/internal/logger"
)

// Cache is a read-through snapshot cache over Redis. A nil Cache (redis
// not configured) is valid and misses everything.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a snapshot cache with the given TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(symbol string) string { return "quote:" + symbol }

// GetSnapshot returns a cached snapshot for the symbol, if any.
func (c *Cache) GetSnapshot(ctx context.Context, symbol string) (*Snapshot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, cacheKey(symbol)).Result()
	if err != nil {
		return nil, false
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}

// PutSnapshot stores a snapshot, best effort.
func (c *Cache) PutSnapshot(ctx context.Context, snapshot Snapshot) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(snapshot.Symbol), raw, c.ttl).Err(); err != nil {
		logger.Get().Debugw("quote cache write failed", "symbol", snapshot.Symbol, "error", err)
	}
}
