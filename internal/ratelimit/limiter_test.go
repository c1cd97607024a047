package ratelimit

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLimiter(limit int) (*Limiter, *time.Time) {
	l := New(time.Minute, limit, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &now
	l.SetClock(func() time.Time { return *clock })
	return l, clock
}

func TestAllow_WithinLimit(t *testing.T) {
	l, _ := testLimiter(10)

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("user-1")
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, resetAt := l.Allow("user-1")
	assert.False(t, ok, "11th request should be rejected")
	assert.False(t, resetAt.IsZero())
}

func TestAllow_WindowReset(t *testing.T) {
	l, clock := testLimiter(10)

	for i := 0; i < 10; i++ {
		l.Allow("user-1")
	}
	ok, _ := l.Allow("user-1")
	assert.False(t, ok)

	*clock = clock.Add(61 * time.Second)

	ok, _ = l.Allow("user-1")
	assert.True(t, ok, "request after window elapses should pass with a fresh counter")

	// Counter restarted at 1, so 9 more fit.
	for i := 0; i < 9; i++ {
		ok, _ = l.Allow("user-1")
		assert.True(t, ok)
	}
	ok, _ = l.Allow("user-1")
	assert.False(t, ok)
}

func TestAllow_IndependentIdentities(t *testing.T) {
	l, _ := testLimiter(2)

	l.Allow("a")
	l.Allow("a")
	ok, _ := l.Allow("a")
	assert.False(t, ok)

	ok, _ = l.Allow("b")
	assert.True(t, ok, "identity b has its own bucket")
}

func TestSweep_DropsExpiredBuckets(t *testing.T) {
	l, clock := testLimiter(10)

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Size())

	*clock = clock.Add(2 * time.Minute)
	l.Allow("c")
	l.sweep()

	assert.Equal(t, 1, l.Size(), "expired buckets should be removed, active one kept")
}
