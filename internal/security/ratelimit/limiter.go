package ratelimit

import (
	"sync"
	"time"
)

// Limiter caps how many requests a key may make per window. The window opens
// on the key's first request; once the cap is reached the key stays blocked
// until the window closes.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*entry
}

type entry struct {
	count       int
	windowStart time.Time
}

func NewLimiter(maxRequests int, window time.Duration) *Limiter {
	if maxRequests < 1 {
		maxRequests = 60
	}
	if window < time.Second {
		window = time.Minute
	}
	return &Limiter{
		max:     maxRequests,
		window:  window,
		entries: make(map[string]*entry),
	}
}

func (l *Limiter) Window() time.Duration {
	return l.window
}

// Allow records a request for key and reports whether it is within the cap.
func (l *Limiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	if e == nil || now.Sub(e.windowStart) >= l.window {
		e = &entry{windowStart: now}
		l.entries[key] = e
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// Prune drops keys whose window has closed.
func (l *Limiter) Prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
