// Keyseq is a line editor with multi-key bindings. Bindings, abbreviations
// and bookmarks come from an rc file and a persistent store; typing a bound
// sequence runs its handler, which may inject text of any length.
//
// Run without arguments for an interactive session. The commands bind,
// unbind, bindings, abbr, unabbr, abbrs, bookmark, unbookmark, bookmarks, dirs
// and forget-dir edit the persistent store instead.
package main

import (
	"os"

	"github.com/elves/keyseq/pkg/buildinfo"
	"github.com/elves/keyseq/pkg/prog"
	"github.com/elves/keyseq/pkg/shell"
	"github.com/elves/keyseq/pkg/storecmd"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, storecmd.Program{}, shell.Program{})))
}
