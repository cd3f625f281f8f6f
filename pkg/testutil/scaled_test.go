package testutil

import (
	"testing"
	"time"
)

var scaledMsTests = []struct {
	name string
	env  string
	ms   int
	want time.Duration
}{
	{"default 10ms", "", 10, 10 * time.Millisecond},
	{"2x 10ms", "2", 10, 20 * time.Millisecond},
	{"0.5x 10ms", "0.5", 10, 5 * time.Millisecond},
	{"invalid", "bad", 10, 10 * time.Millisecond},
	{"negative", "-1", 10, 10 * time.Millisecond},
}

func TestScaledMs(t *testing.T) {
	for _, test := range scaledMsTests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(TimeScaleEnv, test.env)
			if got := ScaledMs(test.ms); got != test.want {
				t.Errorf("ScaledMs(%d) -> %v, want %v", test.ms, got, test.want)
			}
		})
	}
}
