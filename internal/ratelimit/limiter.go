// Package ratelimit implements a fixed-window per-identity request
// counter. The check-then-increment sequence is atomic per call under
// one mutex, but concurrent callers for the same identity may still
// slightly overshoot the limit between HTTP accept and handling; the
// limit is best-effort, not a hard guarantee.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type bucket struct {
	count   int
	resetAt time.Time
}

type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	window time.Duration
	limit  int
	now    func() time.Time
	logger *slog.Logger
}

func New(window time.Duration, limit int, logger *slog.Logger) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		window:  window,
		limit:   limit,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock replaces the time source for tests.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// Allow records one request for identity and reports whether it is
// within the window limit. resetAt is when the current window ends.
func (l *Limiter) Allow(identity string) (allowed bool, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[identity]
	if !ok || now.After(b.resetAt) {
		b = &bucket{count: 0, resetAt: now.Add(l.window)}
		l.buckets[identity] = b
	}

	if b.count >= l.limit {
		return false, b.resetAt
	}
	b.count++
	return true, b.resetAt
}

// StartSweeper runs a background goroutine that periodically drops
// expired buckets so the map stays bounded by active identities.
func (l *Limiter) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, id)
			removed++
		}
	}
	if removed > 0 {
		l.logger.Debug("rate limit sweep", "removed", removed, "remaining", len(l.buckets))
	}
}

// Size reports the current bucket count (for tests and debugging).
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
