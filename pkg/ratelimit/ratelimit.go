// Package ratelimit throttles bot updates per user.
package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mediaindex/mediaindex-bot/config"
	"golang.org/x/time/rate"
)

const maxTrackedUsers = 10000

// Limiter hands every user a token bucket of cfg.Requests tokens refilled
// over cfg.Window. Buckets of idle users expire after two windows.
type Limiter struct {
	enabled bool
	every   rate.Limit
	burst   int

	mu      sync.Mutex
	buckets *expirable.LRU[int64, *rate.Limiter]
}

func New(cfg config.RateLimitConfig) *Limiter {
	l := &Limiter{enabled: cfg.Enabled && cfg.Requests > 0 && cfg.Window > 0}
	if !l.enabled {
		return l
	}
	window := cfg.WindowDuration()
	l.every = rate.Every(window / time.Duration(cfg.Requests))
	l.burst = cfg.Requests
	l.buckets = expirable.NewLRU[int64, *rate.Limiter](maxTrackedUsers, nil, 2*window)
	return l
}

func (l *Limiter) Enabled() bool {
	return l.enabled
}

// Allow consumes one token for userID.
func (l *Limiter) Allow(userID int64) bool {
	return l.AllowAt(userID, time.Now())
}

func (l *Limiter) AllowAt(userID int64, now time.Time) bool {
	if !l.enabled {
		return true
	}
	l.mu.Lock()
	b, ok := l.buckets.Get(userID)
	if !ok {
		b = rate.NewLimiter(l.every, l.burst)
		l.buckets.Add(userID, b)
	}
	l.mu.Unlock()
	return b.AllowN(now, 1)
}

// Tracked is the number of users with a live bucket.
func (l *Limiter) Tracked() int {
	if !l.enabled {
		return 0
	}
	return l.buckets.Len()
}
