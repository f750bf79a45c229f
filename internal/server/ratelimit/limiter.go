// Package ratelimit throttles login attempts per (client address, attempted
// username). The window counters are per-process, in-memory state; a
// horizontally scaled deployment would need a shared external counter store
// behind the same interface.
package ratelimit

import "time"

// Verdict is the outcome of a check-and-increment call.
type Verdict struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter is the injectable throttle capability. Allow records the attempt
// and reports whether it may proceed; when blocked, RetryAfter hints how
// long until the window frees up.
type Limiter interface {
	Allow(key string) Verdict
}

// Key builds the limiter key from the client network address and the
// username supplied in the attempt (not the resolved account).
func Key(clientAddr, username string) string {
	return clientAddr + "_" + username
}
