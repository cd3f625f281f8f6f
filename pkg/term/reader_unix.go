//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

package term

import (
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

// Reader reads units from a file. Reading only happens between Start and
// Stop; while stopped, nothing is read from the file, so another process can
// read from the same terminal.
type Reader struct {
	file  *os.File
	rStop *os.File
	wStop *os.File

	// Bytes read from the file that are not part of a unit yet.
	pend []byte
	// Units read by the last Start but not delivered before Stop.
	held []Unit

	stop chan struct{}
	done chan struct{}
}

// NewReader creates a new Reader reading from f.
func NewReader(f *os.File) (*Reader, error) {
	rStop, wStop, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, rStop: rStop, wStop: wStop}, nil
}

// Start starts a goroutine that reads units until Stop is called or an error
// occurs, and returns a channel that delivers them. An error is delivered as
// the last value. Units read but not received when Stop is called are
// delivered first by the next Start.
func (r *Reader) Start() <-chan Unit {
	ch := make(chan Unit)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.run(ch, r.stop, r.done)
	return ch
}

func (r *Reader) run(ch chan<- Unit, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		var u Unit
		if len(r.held) > 0 {
			u, r.held = r.held[0], r.held[1:]
		} else {
			ru, err := r.ReadUnit()
			if err == ErrStopped {
				return
			}
			u = Unit{Rune: ru, Err: err}
		}
		select {
		case ch <- u:
			if u.Err != nil {
				return
			}
		case <-stop:
			r.held = append([]Unit{u}, r.held...)
			return
		}
	}
}

// Stop stops the goroutine started by Start. It blocks until no read is in
// progress. It does nothing if the reader is not started.
func (r *Reader) Stop() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	_, err := r.wStop.Write([]byte{'q'})
	<-r.done
	if err == nil {
		var b [1]byte
		r.rStop.Read(b[:])
	}
	r.stop, r.done = nil, nil
}

// Close stops the reader and releases its resources. It does not close the
// file.
func (r *Reader) Close() {
	r.Stop()
	r.rStop.Close()
	r.wStop.Close()
}

// ReadUnit reads a single unit. Bytes that are not valid UTF-8 are returned as
// the replacement character U+FFFD. It must not be called while the reader is
// started.
func (r *Reader) ReadUnit() (rune, error) {
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}
	if b < utf8.RuneSelf {
		return rune(b), nil
	}
	n := seqLen(b)
	if n == 0 {
		return utf8.RuneError, nil
	}
	buf := []byte{b}
	for len(buf) < n {
		c, err := r.readByte()
		if err == ErrStopped {
			r.pend = append(buf, r.pend...)
			return 0, err
		} else if err != nil {
			return utf8.RuneError, nil
		}
		if c&0xc0 != 0x80 {
			r.pend = append([]byte{c}, r.pend...)
			return utf8.RuneError, nil
		}
		buf = append(buf, c)
	}
	u, _ := utf8.DecodeRune(buf)
	return u, nil
}

// Length of the UTF-8 sequence started by b, or 0 if b can't start one.
func seqLen(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// Reads one byte, waiting for either the file or the stop pipe to become
// readable first so that no read is left blocking after Stop.
func (r *Reader) readByte() (byte, error) {
	if len(r.pend) > 0 {
		b := r.pend[0]
		r.pend = r.pend[1:]
		return b, nil
	}
	for {
		fds := []unix.PollFd{
			{Fd: int32(r.file.Fd()), Events: unix.POLLIN},
			{Fd: int32(r.rStop.Fd()), Events: unix.POLLIN},
		}
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		} else if err != nil {
			return 0, err
		}
		if fds[1].Revents != 0 {
			return 0, ErrStopped
		}
		if fds[0].Revents == 0 {
			continue
		}
		var b [1]byte
		n, err := r.file.Read(b[:])
		if err != nil {
			return 0, err
		}
		if n != 1 {
			return 0, io.ErrNoProgress
		}
		return b[0], nil
	}
}
