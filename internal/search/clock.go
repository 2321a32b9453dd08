package search

import "time"

// Clock hands out monotonic seconds relative to a fixed reference point,
// matching the session's float64-seconds deadline convention. It wraps
// time.Since rather than converting time.Now to an epoch float directly,
// so arithmetic stays on Go's monotonic clock reading.
type Clock struct {
	start time.Time
}

// NewClock starts a monotonic reference point at the current instant.
func NewClock() Clock {
	return Clock{start: time.Now()}
}

// Now returns the number of seconds elapsed since the clock was created.
func (c Clock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// Deadline returns the absolute deadline, in the clock's own seconds,
// for a budget of d starting now.
func (c Clock) Deadline(d time.Duration) float64 {
	return c.Now() + d.Seconds()
}
