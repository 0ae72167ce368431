package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mediaindex/mediaindex-bot/pkg/metrics"
)

// evictBatch is how many of the oldest entries are dropped when the store
// is full.
const evictBatch = 100

const defaultCapacity = 1000

type entry struct {
	value     string
	createdAt time.Time
	expiresAt time.Time // zero means no expiry
	seq       uint64
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type memoryStore struct {
	mu       sync.Mutex
	entries  map[string]entry
	capacity int
	now      func() time.Time
	seq      uint64
}

func newMemoryStore(capacity int, now func() time.Time) *memoryStore {
	switch {
	case capacity <= 0:
		capacity = defaultCapacity
	case capacity <= evictBatch:
		capacity = evictBatch + 1
	}
	return &memoryStore{
		entries:  make(map[string]entry, capacity),
		capacity: capacity,
		now:      now,
	}
}

func (s *memoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// lookup returns the live entry for key, dropping it if it has expired.
// Callers hold s.mu.
func (s *memoryStore) lookup(key string) (entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return entry{}, false
	}
	if e.expired(s.now()) {
		delete(s.entries, key)
		return entry{}, false
	}
	return e, true
}

func (s *memoryStore) get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	return e.value, ok, nil
}

func (s *memoryStore) set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok && len(s.entries) >= s.capacity {
		s.evictOldest(evictBatch)
	}
	now := s.now()
	s.seq++
	e := entry{value: value, createdAt: now, seq: s.seq}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	s.entries[key] = e
	return nil
}

// evictOldest removes the n entries with the earliest creation time.
func (s *memoryStore) evictOldest(n int) {
	type aged struct {
		key string
		entry
	}
	all := make([]aged, 0, len(s.entries))
	for k, e := range s.entries {
		all = append(all, aged{key: k, entry: e})
	}
	slices.SortFunc(all, func(a, b aged) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	n = min(n, len(all))
	for _, a := range all[:n] {
		delete(s.entries, a.key)
	}
	metrics.CacheEvictions.Add(float64(n))
}

func (s *memoryStore) del(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.lookup(key)
	delete(s.entries, key)
	return ok, nil
}

func (s *memoryStore) exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.lookup(key)
	return ok, nil
}

func (s *memoryStore) clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
	return nil
}

func (s *memoryStore) keys(_ context.Context, pattern string) ([]string, error) {
	match, err := compileGlob(pattern)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0)
	for k := range s.entries {
		if _, ok := s.lookup(k); ok && match(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}
