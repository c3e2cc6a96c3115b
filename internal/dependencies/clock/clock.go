package clock

import "time"

// Clock provides time operations that can be mocked for testing.
// Every stored timestamp in the system (best-result merges, achievement
// unlocks, session expiry) goes through a Clock so tests can pin time.
type Clock interface {
	Now() time.Time
}

// systemClock implements Clock using the system clock
type systemClock struct{}

// New creates a Clock backed by the system clock
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
