package clock

import "time"

// Clock is the time source injected into rooms and the registry, so bid
// timestamps and idle-expiry can be driven by a mock in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
