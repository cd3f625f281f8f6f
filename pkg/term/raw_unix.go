//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

package term

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MakeRaw puts the terminal f into raw mode: input is delivered unit by unit,
// without echo, signal generation or CR-to-NL translation. Output processing
// is left on. It returns a function that restores the previous mode.
func MakeRaw(f *os.File) (restore func() error, err error) {
	fd := int(f.Fd())
	saved, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}

	raw := *saved
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, setAttrNowIOCTL, &raw); err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}
	return func() error {
		return unix.IoctlSetTermios(fd, setAttrNowIOCTL, saved)
	}, nil
}
