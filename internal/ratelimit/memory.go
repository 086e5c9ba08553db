package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a mutex-guarded fixed-window counter, local to one
// process. Horizontally scaled deployments undercount the true global rate;
// that is the documented trade-off, use RedisLimiter when it matters.
type MemoryLimiter struct {
	mu          sync.Mutex
	entries     map[string]*entry
	window      time.Duration
	max         int
	cleanupGap  time.Duration
	lastCleanup time.Time

	now func() time.Time
}

type MemoryOption func(*MemoryLimiter)

func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) { l.now = now }
}

func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(l *MemoryLimiter) { l.cleanupGap = d }
}

func NewMemoryLimiter(window time.Duration, max int, opts ...MemoryOption) *MemoryLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxRequests
	}
	l := &MemoryLimiter{
		entries:    make(map[string]*entry),
		window:     window,
		max:        max,
		cleanupGap: DefaultCleanupInterval,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastCleanup = l.now()
	return l
}

func (l *MemoryLimiter) Check(_ context.Context, identity string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.maybeCleanup(now)

	e, ok := l.entries[identity]
	if !ok || now.After(e.resetTime) {
		l.entries[identity] = &entry{count: 1, resetTime: now.Add(l.window)}
		return Result{Allowed: true}, nil
	}

	if e.count >= l.max {
		retryAfter := e.resetTime.Sub(now)
		// Round up to whole seconds for the Retry-After header.
		secs := (retryAfter + time.Second - 1) / time.Second
		if secs < 1 {
			secs = 1
		}
		return Result{Allowed: false, RetryAfter: secs * time.Second}, nil
	}

	e.count++
	return Result{Allowed: true}, nil
}

// maybeCleanup drops expired entries at most once per cleanupGap so the map
// does not grow without bound across distinct identities. Runs under l.mu.
func (l *MemoryLimiter) maybeCleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.cleanupGap {
		return
	}
	l.lastCleanup = now
	for identity, e := range l.entries {
		if now.After(e.resetTime) {
			delete(l.entries, identity)
		}
	}
}

// Size reports the number of tracked identities. Used by tests and debugging.
func (l *MemoryLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
