package timex

import "time"

// Clock abstracts wall-clock reads. Production code uses RealClock; tests
// substitute a fixed or stepping implementation.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
