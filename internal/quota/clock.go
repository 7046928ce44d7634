package quota

import "time"

// Clock supplies the current time. Cooldown math is expressed entirely in
// terms of explicit timestamps so tests inject synthetic clocks instead of
// waiting on the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Intended for tests and for
// replaying operations at a recorded time.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
