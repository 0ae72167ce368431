package ratelimit

import (
	"testing"
	"time"

	"github.com/mediaindex/mediaindex-bot/config"
)

func TestAllow(t *testing.T) {
	l := New(config.RateLimitConfig{Enabled: true, Requests: 3, Window: 60})
	now := time.Now()
	for i := range 3 {
		if !l.AllowAt(1, now) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.AllowAt(1, now) {
		t.Fatal("fourth request inside the window should be refused")
	}
	if !l.AllowAt(2, now) {
		t.Fatal("other users have their own bucket")
	}
	if !l.AllowAt(1, now.Add(30*time.Second)) {
		t.Fatal("a token should refill after window/requests")
	}
	if got := l.Tracked(); got != 2 {
		t.Fatalf("Tracked = %d, want 2", got)
	}
}

func TestDisabled(t *testing.T) {
	for _, cfg := range []config.RateLimitConfig{
		{Enabled: false, Requests: 1, Window: 60},
		{Enabled: true, Requests: 0, Window: 60},
	} {
		l := New(cfg)
		for range 10 {
			if !l.AllowAt(1, time.Now()) {
				t.Fatalf("disabled limiter refused a request (%+v)", cfg)
			}
		}
	}
}
