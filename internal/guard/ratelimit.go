// Package guard protects the public endpoints from abuse. Access codes and
// challenge passwords are short shared secrets, so the player API needs
// brute-force throttling.
package guard

import (
	"sync"
	"time"
)

// RateLimiter implements a sliding window rate limiter keyed by caller.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string][]time.Time
	limit     int
	window    time.Duration
	lastSweep time.Time
}

// NewRateLimiter creates a rate limiter with the given limit per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:   make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the key is within its rate limit, recording the
// request when it is. Expired entries are pruned on every check, and once
// per window all fully expired keys are evicted so the map does not grow
// with every client IP ever seen.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	if now.Sub(rl.lastSweep) > rl.window {
		for k, entries := range rl.windows {
			if len(entries) == 0 || !entries[len(entries)-1].After(cutoff) {
				delete(rl.windows, k)
			}
		}
		rl.lastSweep = now
	}

	entries := rl.windows[key]
	valid := entries[:0]
	for _, t := range entries {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.windows[key] = valid
		return false
	}

	rl.windows[key] = append(valid, now)
	return true
}
