package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Memo is a typed in-process memo with a fixed TTL, used to keep hot
// search results out of the backend.
type Memo[T any] struct {
	cache *ristretto.Cache[string, T]
	ttl   time.Duration
}

func NewMemo[T any](numCounters, maxCost int64, ttl time.Duration) (*Memo[T], error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, T]{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return &Memo[T]{cache: c, ttl: ttl}, nil
}

// Set stores value with the given cost and waits until it is visible to Get.
func (m *Memo[T]) Set(key string, value T, cost int64) error {
	if m.ttl <= 0 {
		return nil
	}
	if ok := m.cache.SetWithTTL(key, value, cost, m.ttl); !ok {
		return fmt.Errorf("failed to set value in cache")
	}
	m.cache.Wait()
	return nil
}

func (m *Memo[T]) Get(key string) (T, bool) {
	return m.cache.Get(key)
}

func (m *Memo[T]) Clear() {
	m.cache.Clear()
}

func (m *Memo[T]) Close() {
	m.cache.Close()
}
