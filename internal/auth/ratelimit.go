package auth

import (
	"sync"
	"time"
)

type attemptEntry struct {
	count int
	last  time.Time
}

// RateLimiter throttles login attempts per source address: at most max
// attempts inside a fixed window. An attempt after a full window of silence
// resets the counter. Entries are never deleted; a stale entry resets itself
// on the next attempt from that address, and the per-address footprint is a
// handful of bytes.
//
// This runs before any account lookup, so it caps brute force from one
// origin even when each attempt targets a different account.
type RateLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	attempts map[string]attemptEntry

	now func() time.Time // overridable in tests
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:      max,
		window:   window,
		attempts: make(map[string]attemptEntry),
		now:      time.Now,
	}
}

// Allow records an attempt from addr and reports whether it may proceed.
// Blocked attempts are not counted, so the block lifts one window after the
// last counted attempt rather than extending itself forever.
func (l *RateLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.attempts[addr]

	if !ok || now.Sub(entry.last) >= l.window {
		l.attempts[addr] = attemptEntry{count: 1, last: now}
		return true
	}

	if entry.count >= l.max {
		return false
	}

	entry.count++
	entry.last = now
	l.attempts[addr] = entry
	return true
}
