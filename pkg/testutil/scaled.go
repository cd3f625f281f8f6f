package testutil

import (
	"os"
	"strconv"
	"time"

	"github.com/elves/keyseq/pkg/env"
)

// TimeScaleEnv is the environment variable that scales durations returned by
// Scaled and ScaledMs. Slow machines running the tests can set it to a value
// larger than 1.
const TimeScaleEnv = env.KEYSEQ_TEST_TIME_SCALE

// Scaled returns d scaled by $KEYSEQ_TEST_TIME_SCALE. If the environment
// variable does not exist or contains an invalid value, the scale defaults to
// 1.
func Scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * getTestTimeScale())
}

// ScaledMs returns ms milliseconds, scaled like Scaled.
func ScaledMs(ms int) time.Duration {
	return Scaled(time.Duration(ms) * time.Millisecond)
}

func getTestTimeScale() float64 {
	s := os.Getenv(TimeScaleEnv)
	if s == "" {
		return 1
	}
	scale, err := strconv.ParseFloat(s, 64)
	if err != nil || scale <= 0 {
		return 1
	}
	return scale
}
