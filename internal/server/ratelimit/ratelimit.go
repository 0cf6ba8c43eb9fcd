// Package ratelimit throttles document edits per client with token buckets.
//
// Every accepted edit re-arms the autosave timer and every accepted navigation or
// template change writes through to the store, so a runaway client is bounded here
// rather than at the storage backend.
package ratelimit

import (
	"net/http"
	"sync"
	"time"
)

// Defaults for a single editing client: sustained typing at a few keystrokes per
// second with room for bursts.
const (
	DefaultLimit  = 600
	DefaultWindow = time.Minute
	DefaultBurst  = 60
)

// bucket holds the tokens of one client.
type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// Info describes the limit state after a decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Config configures a Limiter. A zero Limit disables limiting.
type Config struct {
	Limit  int           // requests per Window
	Window time.Duration // refill period
	Burst  int           // bucket capacity, defaults to Limit
	Idle   time.Duration // buckets unused for longer are dropped by Sweep
}

// DefaultConfig returns the limits used by the server.
func DefaultConfig() Config {
	return Config{Limit: DefaultLimit, Window: DefaultWindow, Burst: DefaultBurst, Idle: time.Hour}
}

// Limiter hands out tokens per client key.
type Limiter struct {
	mu      sync.Mutex
	cfg     Config
	rate    float64
	buckets map[string]*bucket
	now     func() time.Time
}

// NewLimiter creates a limiter. now may be nil, in which case time.Now is used.
func NewLimiter(cfg Config, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Limit
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	l := &Limiter{cfg: cfg, buckets: make(map[string]*bucket), now: now}
	if cfg.Limit > 0 {
		l.rate = float64(cfg.Limit) / cfg.Window.Seconds()
	}
	return l
}

// Enabled reports whether the limiter rejects anything at all.
func (l *Limiter) Enabled() bool {
	return l.cfg.Limit > 0
}

// Allow consumes one token for client.
func (l *Limiter) Allow(client string) Info {
	if !l.Enabled() {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[client]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), lastRefill: now}
		l.buckets[client] = b
	}
	b.tokens = min(float64(l.cfg.Burst), b.tokens+now.Sub(b.lastRefill).Seconds()*l.rate)
	b.lastRefill = now
	b.lastSeen = now

	info := Info{Limit: l.cfg.Limit}
	if b.tokens >= 1 {
		b.tokens--
		info.Allowed = true
		info.Remaining = int(b.tokens)
		return info
	}
	info.RetryAfter = time.Duration((1 - b.tokens) / l.rate * float64(time.Second))
	return info
}

// Sweep drops buckets that have been idle for longer than Config.Idle and returns how
// many were removed.
func (l *Limiter) Sweep() int {
	if l.cfg.Idle <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.cfg.Idle)
	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Limited reports whether a request is subject to limiting. Reads are free; only
// requests that change the document spend tokens.
func Limited(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
