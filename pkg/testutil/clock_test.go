package testutil

import (
	"testing"
	"time"
)

func TestFakeClock(t *testing.T) {
	c := NewFakeClock()
	t0 := c.Now()
	c.Advance(time.Second)
	if got := c.Now().Sub(t0); got != time.Second {
		t.Errorf("clock advanced by %v, want 1s", got)
	}
}
