// Package cache is the best-effort key/value cache used beside the document
// store. It talks to Redis when reachable at construction and otherwise
// keeps a bounded in-process map for the rest of the process lifetime.
package cache

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

type Mode string

const (
	ModeRedis  Mode = "redis"
	ModeMemory Mode = "memory"
)

type store interface {
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string, ttl time.Duration) error
	del(ctx context.Context, key string) (bool, error)
	exists(ctx context.Context, key string) (bool, error)
	clear(ctx context.Context) error
	keys(ctx context.Context, pattern string) ([]string, error)
}

type Cache struct {
	mode         Mode
	redisEnabled bool
	store        store
	mem          *memoryStore
	rdb          *redis.Client
}

type Status struct {
	Mode         Mode `json:"mode"`
	RedisEnabled bool `json:"redis_enabled"`
	// Fallback is true when redis was requested but could not be used.
	Fallback  bool `json:"fallback"`
	Reachable bool `json:"reachable"`
	Size      int  `json:"size,omitempty"`
	Capacity  int  `json:"capacity,omitempty"`
}

type options struct {
	now         func() time.Time
	pingTimeout time.Duration
}

type Option func(*options)

// WithClock replaces the clock of the in-process store.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithPingTimeout(d time.Duration) Option {
	return func(o *options) { o.pingTimeout = d }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, pingTimeout: 2 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New resolves the backend once. Any redis failure (bad url, refused
// connection, timeout) is logged and the in-process store is used instead.
func New(ctx context.Context, rcfg config.RedisConfig, ccfg config.CacheConfig, opts ...Option) *Cache {
	logger := log.FromContext(ctx).WithPrefix("cache")
	o := buildOptions(opts)
	if rcfg.Enabled {
		rdb, err := dialRedis(ctx, rcfg, o.pingTimeout)
		if err == nil {
			logger.Info("Using redis cache", "addr", rdb.Options().Addr)
			return &Cache{mode: ModeRedis, redisEnabled: true, store: &redisStore{rdb: rdb}, rdb: rdb}
		}
		logger.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
	}
	c := newMemoryCache(ccfg.MaxEntries, o)
	c.redisEnabled = rcfg.Enabled
	logger.Info("Using in-memory cache", "capacity", c.mem.capacity)
	return c
}

// NewMemory returns a cache backed only by the in-process store. A
// capacity <= 0 uses 1000 entries; smaller positive capacities are raised
// to one more than the eviction batch of 100.
func NewMemory(capacity int, opts ...Option) *Cache {
	return newMemoryCache(capacity, buildOptions(opts))
}

func newMemoryCache(capacity int, o options) *Cache {
	mem := newMemoryStore(capacity, o.now)
	return &Cache{mode: ModeMemory, store: mem, mem: mem}
}

func (c *Cache) Mode() Mode {
	return c.mode
}

func (c *Cache) Status(ctx context.Context) Status {
	st := Status{Mode: c.mode, RedisEnabled: c.redisEnabled}
	switch c.mode {
	case ModeRedis:
		st.Reachable = c.rdb.Ping(ctx).Err() == nil
	case ModeMemory:
		st.Fallback = c.redisEnabled
		st.Reachable = true
		st.Size = c.mem.size()
		st.Capacity = c.mem.capacity
	}
	return st
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	v, ok, err := c.store.get(ctx, key)
	if err != nil {
		c.logError(ctx, "get", key, err)
		return "", false
	}
	if ok {
		metrics.CacheHits.WithLabelValues(string(c.mode)).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(string(c.mode)).Inc()
	}
	return v, ok
}

// Set stores value under key. A ttl of zero keeps the entry until it is
// deleted or evicted.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if err := c.store.set(ctx, key, value, ttl); err != nil {
		c.logError(ctx, "set", key, err)
		return false
	}
	return true
}

func (c *Cache) Delete(ctx context.Context, key string) bool {
	ok, err := c.store.del(ctx, key)
	if err != nil {
		c.logError(ctx, "delete", key, err)
		return false
	}
	return ok
}

func (c *Cache) Exists(ctx context.Context, key string) bool {
	ok, err := c.store.exists(ctx, key)
	if err != nil {
		c.logError(ctx, "exists", key, err)
		return false
	}
	return ok
}

func (c *Cache) Clear(ctx context.Context) bool {
	if err := c.store.clear(ctx); err != nil {
		c.logError(ctx, "clear", "", err)
		return false
	}
	return true
}

// Keys lists live keys matching a glob pattern ("*" and "?" wildcards).
func (c *Cache) Keys(ctx context.Context, pattern string) []string {
	keys, err := c.store.keys(ctx, pattern)
	if err != nil {
		c.logError(ctx, "keys", pattern, err)
		return []string{}
	}
	return keys
}

func (c *Cache) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

func (c *Cache) logError(ctx context.Context, op, key string, err error) {
	log.FromContext(ctx).WithPrefix("cache").Error("Cache operation failed", "op", op, "key", key, "mode", c.mode, "error", err)
}
