// Package ratelimiter provides an in-process fixed-window hit counter, used
// when no Redis instance is configured.
package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts hits per key in fixed windows. It is safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	sweepAt time.Time
}

// NewRateLimiter creates an empty RateLimiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Incr adds a hit to key. The first hit of a window starts it; the window
// resets once its duration has elapsed.
func (rl *RateLimiter) Incr(_ context.Context, key string, d time.Duration) (int, time.Duration, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now, d)

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		rl.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt.Sub(now), nil
}

// sweep drops expired windows at most once per window length.
func (rl *RateLimiter) sweep(now time.Time, d time.Duration) {
	if now.Before(rl.sweepAt) {
		return
	}
	for k, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, k)
		}
	}
	rl.sweepAt = now.Add(d)
}

// Len reports the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}
