// Package dispatchtest provides helpers for testing handlers with a
// dispatch.Engine.
package dispatchtest

import (
	"strings"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/keys"
)

// Editor simulates a line editor driving an engine. It keeps a line buffer
// with the cursor always at the end; Backspace deletes the last rune.
type Editor struct {
	Engine *dispatch.Engine
	Mode   dispatch.Mode
	line   []rune
}

// Line returns the content of the line buffer.
func (ed *Editor) Line() string { return string(ed.line) }

// Type feeds every unit in s to the engine, draining queued output after each
// unit, and returns the resulting line.
func (ed *Editor) Type(s string) string {
	for _, r := range s {
		ed.apply(r, ed.Engine.Handle(r, ed.state()))
		for ed.Engine.Pending() {
			ed.apply(dispatch.NoUnit, ed.Engine.Handle(dispatch.NoUnit, ed.state()))
		}
	}
	return ed.Line()
}

func (ed *Editor) state() dispatch.State {
	line := ed.Line()
	return dispatch.State{Line: line, Cursor: len(line), Mode: ed.Mode}
}

func (ed *Editor) apply(in rune, res dispatch.Result) {
	switch res.Verdict {
	case dispatch.PassThrough:
		ed.insert(in)
	case dispatch.Emit:
		ed.insert(res.Unit)
	}
}

func (ed *Editor) insert(r rune) {
	if string(r) == keys.Backspace {
		if len(ed.line) > 0 {
			ed.line = ed.line[:len(ed.line)-1]
		}
		return
	}
	ed.line = append(ed.line, r)
}

// Errors collects errors reported by an engine.
type Errors []error

// Report appends err. It can be used as dispatch.Spec.OnError.
func (e *Errors) Report(err error) { *e = append(*e, err) }

// String joins the messages of all errors.
func (e Errors) String() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
