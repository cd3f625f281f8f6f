// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/elves/keyseq/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"fmt"
	"os"
	"runtime"

	"github.com/elves/keyseq/pkg/prog"
)

// Version identifies the version of keyseq. On development commits, it
// identifies the next release.
const Version = "v0.1.0"

// VersionSuffix is appended to Version in the output of "keyseq -version" to
// build the full version string.
var VersionSuffix = "-dev.unknown"

// Program is the buildinfo subprogram. It runs when -version is given.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version {
		return prog.ErrNotSuitable
	}
	fmt.Fprintln(fds[1], "Version:", Version+VersionSuffix)
	fmt.Fprintln(fds[1], "Go version:", runtime.Version())
	return nil
}
