package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is a per-key daily counter. Counts reset at UTC midnight.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

// RedisCounter backs the counter with Redis, keyed per day so expiry does
// the reset.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(addr string) *RedisCounter {
	return &RedisCounter{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	now := time.Now().UTC()
	dayKey := key + ":" + now.Format("2006-01-02")

	count, err := c.client.Incr(ctx, dayKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		c.client.ExpireAt(ctx, dayKey, midnight)
	}
	return count, nil
}

// MemoryCounter is the in-process fallback used when Redis is not
// configured, and by tests. Same daily-reset semantics, single instance
// only.
type MemoryCounter struct {
	mu     sync.Mutex
	day    string
	counts map[string]int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int64)}
}

func (c *MemoryCounter) Incr(ctx context.Context, key string) (int64, error) {
	day := time.Now().UTC().Format("2006-01-02")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.day != day {
		c.day = day
		c.counts = make(map[string]int64)
	}
	c.counts[key]++
	return c.counts[key], nil
}
