// Package editor implements a minimal line editor that drives a dispatch
// engine. It owns the line, the cursor and the mode, and applies the output of
// the engine one unit per callback.
package editor

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/events"
	"github.com/elves/keyseq/pkg/logutil"
	"github.com/elves/keyseq/pkg/term"
)

var logger = logutil.GetLogger("[editor] ")

// ErrInterrupted is returned by ReadLine when the user presses Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// Units with special meaning.
const (
	ctrlC     = '\x03'
	ctrlD     = '\x04'
	ctrlH     = '\x08'
	esc       = '\x1b'
	backspace = '\x7f'
)

// Input is a source of units that can be paused. It is implemented by
// *term.Reader.
type Input interface {
	// Start starts reading and returns a channel delivering the units read.
	Start() <-chan term.Unit
	// Stop stops reading. Nothing must be read from the input after it
	// returns, until the next Start.
	Stop()
}

// Spec specifies the dependencies of an Editor.
type Spec struct {
	Engine *dispatch.Engine
	// Input is only read while ReadLine waits for a unit. It is stopped while
	// the engine and its handlers run, so that subprocesses started by
	// handlers can read from the same terminal.
	In Input
	// Where the line is drawn. Defaults to io.Discard.
	Out io.Writer
	// Returns the width of the terminal. When nil, lines are drawn in full.
	Width func() int
	// Receives before-readline and after-readline events. Optional.
	Bus    *events.Bus
	Prompt string
	// Functions received are called between units, on the goroutine calling
	// ReadLine. Used to apply reloaded configuration.
	Reloads <-chan func()
}

// Editor is a line editor. It is not safe for concurrent use.
type Editor struct {
	engine  *dispatch.Engine
	in      Input
	out     io.Writer
	width   func() int
	bus     *events.Bus
	prompt  string
	reloads <-chan func()

	buf  []rune
	dot  int
	mode dispatch.Mode
}

// New creates a new Editor.
func New(spec Spec) *Editor {
	ed := &Editor{
		engine: spec.Engine, in: spec.In, out: spec.Out, width: spec.Width,
		bus: spec.Bus, prompt: spec.Prompt, reloads: spec.Reloads,
	}
	if ed.out == nil {
		ed.out = io.Discard
	}
	return ed
}

// SetPrompt changes the prompt drawn before the line.
func (ed *Editor) SetPrompt(p string) { ed.prompt = p }

// Mode returns the current mode.
func (ed *Editor) Mode() dispatch.Mode { return ed.mode }

// What a unit did to the read.
type outcome int

const (
	keepReading outcome = iota
	submitted
	interrupted
	eof
)

// ReadLine reads a line. It returns io.EOF when the user presses Ctrl-D on an
// empty line or the input ends, and ErrInterrupted when the user presses
// Ctrl-C. Each read starts in insert mode.
func (ed *Editor) ReadLine(ctx context.Context) (string, error) {
	ed.buf, ed.dot, ed.mode = nil, 0, dispatch.InsertMode
	ed.publish(events.BeforeReadline)
	ed.redraw()

	// Output left over from the previous read is delivered first.
	o := ed.drain()
	var in <-chan term.Unit
	if o == keepReading {
		in = ed.in.Start()
	}
	defer ed.in.Stop()
	for o == keepReading {
		select {
		case <-ctx.Done():
			ed.finish()
			return "", ctx.Err()
		case f := <-ed.reloads:
			f()
			continue
		case u, ok := <-in:
			ed.in.Stop()
			if !ok {
				o = eof
				break
			}
			if u.Err != nil {
				ed.finish()
				if u.Err == io.EOF {
					return "", io.EOF
				}
				return "", u.Err
			}
			o = ed.feed(u.Rune)
			if o == keepReading {
				o = ed.drain()
			}
			if o == keepReading {
				in = ed.in.Start()
			}
		}
		ed.redraw()
	}

	ed.finish()
	switch o {
	case submitted:
		line := string(ed.buf)
		ed.publish(events.AfterReadline, line)
		return line, nil
	case interrupted:
		return "", ErrInterrupted
	default:
		return "", io.EOF
	}
}

func (ed *Editor) feed(in rune) outcome {
	res := ed.engine.Handle(in, ed.state())
	switch res.Verdict {
	case dispatch.PassThrough:
		return ed.apply(in)
	case dispatch.Emit:
		return ed.apply(res.Unit)
	}
	return keepReading
}

// Drains queued output until it runs out or ends the read.
func (ed *Editor) drain() outcome {
	for ed.engine.Pending() {
		if o := ed.feed(dispatch.NoUnit); o != keepReading {
			return o
		}
	}
	return keepReading
}

func (ed *Editor) state() dispatch.State {
	line := string(ed.buf)
	return dispatch.State{Line: line, Cursor: len(string(ed.buf[:ed.dot])), Mode: ed.mode}
}

// Applies the default behavior of a unit.
func (ed *Editor) apply(r rune) outcome {
	switch r {
	case '\r', '\n':
		return submitted
	case ctrlC:
		return interrupted
	}
	if ed.mode == dispatch.CommandMode {
		ed.applyCommand(r)
		return keepReading
	}
	switch r {
	case ctrlD:
		if len(ed.buf) == 0 {
			return eof
		}
	case backspace, ctrlH:
		if ed.dot > 0 {
			ed.buf = append(ed.buf[:ed.dot-1], ed.buf[ed.dot:]...)
			ed.dot--
		}
	case esc:
		ed.mode = dispatch.CommandMode
		if ed.dot > 0 {
			ed.dot--
		}
	default:
		if unicode.IsPrint(r) {
			ed.buf = append(ed.buf[:ed.dot], append([]rune{r}, ed.buf[ed.dot:]...)...)
			ed.dot++
		} else {
			logger.Printf("ignoring unit %q", r)
		}
	}
	return keepReading
}

func (ed *Editor) applyCommand(r rune) {
	switch r {
	case 'h', backspace, ctrlH:
		if ed.dot > 0 {
			ed.dot--
		}
	case 'l':
		if ed.dot < len(ed.buf)-1 {
			ed.dot++
		}
	case '0':
		ed.dot = 0
	case '$':
		ed.dot = max(len(ed.buf)-1, 0)
	case 'x':
		if ed.dot < len(ed.buf) {
			ed.buf = append(ed.buf[:ed.dot], ed.buf[ed.dot+1:]...)
			if ed.dot > 0 && ed.dot == len(ed.buf) {
				ed.dot--
			}
		}
	case 'i':
		ed.mode = dispatch.InsertMode
	case 'a':
		ed.mode = dispatch.InsertMode
		if ed.dot < len(ed.buf) {
			ed.dot++
		}
	case 'I':
		ed.mode = dispatch.InsertMode
		ed.dot = 0
	case 'A':
		ed.mode = dispatch.InsertMode
		ed.dot = len(ed.buf)
	}
}

func (ed *Editor) redraw() {
	head := ed.prompt + string(ed.buf[:ed.dot])
	tail := string(ed.buf[ed.dot:])
	if ed.width != nil {
		// The last column is left empty to keep the terminal from wrapping.
		if w := ed.width(); w > 1 {
			head, tail = fit(head, tail, w-1)
		}
	}
	s := "\r" + head + tail + "\x1b[K\r"
	if w := uniseg.StringWidth(head); w > 0 {
		s += "\x1b[" + strconv.Itoa(w) + "C"
	}
	io.WriteString(ed.out, s)
}

// Trims the text before and after the cursor to fit in the given number of
// columns, keeping the cursor and the character under it within them. The
// start of head and the end of tail are dropped.
func fit(head, tail string, columns int) (string, string) {
	_, _, cursorWidth, _ := uniseg.FirstGraphemeClusterInString(tail, -1)
	for head != "" && uniseg.StringWidth(head)+cursorWidth > columns {
		_, head, _, _ = uniseg.FirstGraphemeClusterInString(head, -1)
	}
	used := uniseg.StringWidth(head)
	var sb strings.Builder
	state := -1
	for tail != "" {
		var cluster string
		var w int
		cluster, tail, w, state = uniseg.FirstGraphemeClusterInString(tail, state)
		if used+w > columns {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	return head, sb.String()
}

func (ed *Editor) finish() {
	io.WriteString(ed.out, "\r\n")
}

func (ed *Editor) publish(name string, args ...any) {
	if ed.bus != nil {
		ed.bus.Publish(name, args...)
	}
}
