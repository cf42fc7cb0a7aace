package stats

import "time"

// Clock provides the current time to the reconciler.
// This interface allows "today" to be fixed in tests.
type Clock interface {
	Now() time.Time
}

// RealClock provides actual system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}
