// Package env keeps names of environment variables with special significance to
// keyseq.
package env

// Environment variables with special significance to keyseq.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	HOME                   = "HOME"
	KEYSEQ_TEST_TIME_SCALE = "KEYSEQ_TEST_TIME_SCALE"
	PWD                    = "PWD"
	SHELL                  = "SHELL"
	XDG_CONFIG_HOME        = "XDG_CONFIG_HOME"
	XDG_STATE_HOME         = "XDG_STATE_HOME"
)
