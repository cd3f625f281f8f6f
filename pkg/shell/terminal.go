package shell

import (
	"fmt"
	"os"

	"github.com/elves/keyseq/pkg/term"
)

// The terminal the session reads from. Raw mode is only used when the input
// is a terminal.
type terminal struct {
	in      *os.File
	stderr  *os.File
	restore func() error
}

func setupTerminal(in, stderr *os.File) *terminal {
	t := &terminal{in: in, stderr: stderr, restore: func() error { return nil }}
	if !term.IsTerminal(in) {
		logger.Println("input is not a terminal")
		return t
	}
	t.enter()
	return t
}

func (t *terminal) enter() {
	if !term.IsTerminal(t.in) {
		return
	}
	restore, err := term.MakeRaw(t.in)
	if err != nil {
		fmt.Fprintln(t.stderr, "Warning:", err)
		return
	}
	t.restore = restore
}

// Runs f with the terminal in the mode it had before the session.
func (t *terminal) suspended(f func()) {
	if err := t.restore(); err != nil {
		logger.Println("restore terminal:", err)
	}
	t.restore = func() error { return nil }
	defer t.enter()
	f()
}
