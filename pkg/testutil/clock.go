package testutil

import "time"

// FakeClock is a manually advanced clock. Its Now method can be used wherever
// a func() time.Time is expected.
type FakeClock struct {
	t time.Time
}

// NewFakeClock returns a FakeClock starting at an arbitrary fixed time.
func NewFakeClock() *FakeClock {
	return &FakeClock{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current time of the clock.
func (c *FakeClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
