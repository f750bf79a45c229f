package ratelimit

import (
	"sync"
	"time"

	"github.com/skillforge/resumekeeper/internal/timex"
)

// MemoryLimiter counts attempts per key in a rolling window. Safe for
// concurrent use.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	clock   timex.Clock
	entries map[string][]time.Time
}

func NewMemoryLimiter(max int, window time.Duration, clock timex.Clock) *MemoryLimiter {
	if clock == nil {
		clock = timex.RealClock{}
	}
	return &MemoryLimiter{
		window:  window,
		max:     max,
		clock:   clock,
		entries: make(map[string][]time.Time),
	}
}

// Allow drops timestamps that fell out of the window, then admits the
// attempt if fewer than max remain. Admitted attempts are recorded; blocked
// ones are not, so the window drains on its own.
func (l *MemoryLimiter) Allow(key string) Verdict {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	ts := l.entries[key]
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	ts = kept

	if len(ts) >= l.max {
		l.entries[key] = ts
		return Verdict{Allowed: false, RetryAfter: ts[0].Add(l.window).Sub(now)}
	}

	l.entries[key] = append(ts, now)
	return Verdict{Allowed: true}
}

// Sweep removes keys whose attempts have all expired. Called periodically
// so idle keys do not accumulate.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.clock.Now().Add(-l.window)
	for key, ts := range l.entries {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(l.entries, key)
		}
	}
}

// SweepLoop runs Sweep at the given interval until ctx is cancelled.
func (l *MemoryLimiter) SweepLoop(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
