// Package term provides the terminal support needed by the editor: detecting
// terminals, putting them into raw mode and reading input units.
package term

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	xterm "golang.org/x/term"
)

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Size returns the width and height of the terminal f, falling back to 80x24
// when the size cannot be determined.
func Size(f *os.File) (width, height int) {
	width, height, err := xterm.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}

// Unit is a unit read by a Reader, or the error that ended reading.
type Unit struct {
	Rune rune
	Err  error
}

// ErrStopped is returned by (*Reader).ReadUnit when the reader is stopped
// while waiting for input.
var ErrStopped = errors.New("stopped")
