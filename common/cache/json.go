package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
)

// GetJSON decodes the value under key into dest. Malformed data is logged
// and reported as a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.FromContext(ctx).WithPrefix("cache").Warn("Malformed cached JSON", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.FromContext(ctx).WithPrefix("cache").Error("Failed to encode cache value", "key", key, "error", err)
		return false
	}
	return c.Set(ctx, key, string(data), ttl)
}
