// Package dispatch implements a keystroke dispatch engine for line editors
// that deliver input one unit at a time and accept at most one unit of output
// per callback.
//
// The engine supports bindings of single units and multi-unit sequences,
// disambiguating sequences that are prefixes of other sequences with a
// timeout, and lets handlers inject text of arbitrary length, which is then
// delivered one unit per callback.
//
// An Engine is not safe for concurrent use. The editor is expected to call
// Handle from a single goroutine, once per input unit.
package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/elves/keyseq/pkg/logutil"
)

var logger = logutil.GetLogger("[dispatch] ")

// DefaultTimeout is the default time after which a pending sequence that has
// not been extended is considered abandoned.
const DefaultTimeout = 200 * time.Millisecond

// NoUnit is passed to Handle when the editor has no new input and calls only
// to drain queued output.
const NoUnit rune = -1

// Mode is the editing mode of the editor.
type Mode int

// Possible values of Mode.
const (
	InsertMode Mode = iota
	CommandMode
)

func (m Mode) String() string {
	if m == CommandMode {
		return "command"
	}
	return "insert"
}

func (m Mode) scope() Scope {
	if m == CommandMode {
		return Command
	}
	return Insert
}

// State is the part of the editor state passed along with each input unit.
type State struct {
	Line   string
	Cursor int
	Mode   Mode
}

// Verdict tells the editor what to do with the output slot.
type Verdict int

// Possible values of Verdict.
const (
	// PassThrough leaves the output slot untouched; the editor handles the
	// input unit with its default behavior.
	PassThrough Verdict = iota
	// Emit overwrites the output slot with Result.Unit.
	Emit
	// Suppress clears the output slot.
	Suppress
)

func (v Verdict) String() string {
	switch v {
	case PassThrough:
		return "pass-through"
	case Emit:
		return "emit"
	case Suppress:
		return "suppress"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Result is the outcome of a single callback.
type Result struct {
	Verdict Verdict
	Unit    rune
}

func emit(r rune) Result { return Result{Verdict: Emit, Unit: r} }

var suppress = Result{Verdict: Suppress}

// Spec specifies the configuration of an Engine. All fields are optional.
type Spec struct {
	// Timeout after which a pending sequence is replayed as literal input.
	// Defaults to DefaultTimeout.
	Timeout time.Duration
	// Source of the current time. Defaults to time.Now.
	Clock func() time.Time
	// Called with the new mode whenever the mode of the editor changes.
	OnModeChange func(Mode)
	// Called when a handler fails. The error is a *HandlerError.
	OnError func(error)
}

// Engine is the dispatch engine. It is created by New.
type Engine struct {
	timeout      time.Duration
	clock        func() time.Time
	onModeChange func(Mode)
	onError      func(error)

	bindings bindingStore
	prefixes prefixIndex
	pending  pending
	queue    injectQueue
	mode     Mode

	handling bool
	call     *Call
}

// New creates a new Engine with no bindings. The engine starts in insert mode.
func New(spec Spec) *Engine {
	e := &Engine{
		timeout:      spec.Timeout,
		clock:        spec.Clock,
		onModeChange: spec.OnModeChange,
		onError:      spec.OnError,
		bindings:     newBindingStore(),
		prefixes:     prefixIndex{},
		mode:         InsertMode,
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.onModeChange == nil {
		e.onModeChange = func(Mode) {}
	}
	if e.onError == nil {
		e.onError = func(err error) { logger.Println(err) }
	}
	return e
}

// SetTimeout changes the sequence timeout. A non-positive value restores
// DefaultTimeout.
func (e *Engine) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	e.timeout = d
}

// Timeout returns the current sequence timeout.
func (e *Engine) Timeout() time.Duration { return e.timeout }

// Bind binds seq in the given scope to h, replacing any existing binding of
// the same sequence in the same scope.
func (e *Engine) Bind(seq string, scope Scope, h Handler) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	if seq == "" {
		return &ConfigError{Msg: "empty sequence"}
	}
	if h == nil {
		return &ConfigError{Msg: "nil handler for " + fmt.Sprintf("%q", seq)}
	}
	e.bindings.put(seq, scope, h)
	e.rebuild()
	return nil
}

// Unbind removes the binding of seq in the given scope. It is a no-op if there
// is no such binding.
func (e *Engine) Unbind(seq string, scope Scope) error {
	if err := checkScope(scope); err != nil {
		return err
	}
	e.bindings.del(seq, scope)
	e.rebuild()
	return nil
}

func (e *Engine) rebuild() {
	e.prefixes = buildPrefixIndex(&e.bindings)
	if e.pending.active() && !e.prefixes.has(e.pending.seq) {
		// The pending sequence can no longer match anything.
		logger.Printf("pending %q invalidated by binding change", e.pending.seq)
		e.queue.prepend(literal(e.pending.seq))
		e.pending.clear()
	}
}

// Bindings returns a copy of the bindings in the given scope.
func (e *Engine) Bindings(scope Scope) map[string]Handler {
	if !scope.valid() {
		return nil
	}
	m := make(map[string]Handler, len(e.bindings[scope]))
	for seq, h := range e.bindings[scope] {
		m[seq] = h
	}
	return m
}

// IsPrefix reports whether seq is a strict prefix of any bound sequence.
func (e *Engine) IsPrefix(seq string) bool { return e.prefixes.has(seq) }

// PendingSequence returns the sequence being accumulated, or "" if there is
// none.
func (e *Engine) PendingSequence() string { return e.pending.seq }

// Pending reports whether there is queued output. While it returns true, the
// editor should call Handle with NoUnit before reading more input.
func (e *Engine) Pending() bool { return !e.queue.empty() }

// Mode returns the last observed mode.
func (e *Engine) Mode() Mode { return e.mode }

// Inject delivers text to the editor. When called from a handler, the first
// unit becomes the output of the current callback and the rest is delivered
// on subsequent callbacks, ahead of anything else still queued. Successive
// calls from the same handler invocation concatenate. When called outside a
// handler, the whole text is queued after any queued output.
func (e *Engine) Inject(text string) {
	if text == "" {
		return
	}
	if e.call != nil {
		e.call.injected += text
		return
	}
	e.queue.push(literal(text)...)
}

var errReentrant = errors.New("dispatch: Handle called re-entrantly")

// Handle processes one input unit and returns what the editor should do with
// its output slot. It must not be called from within a handler.
func (e *Engine) Handle(in rune, st State) Result {
	if e.handling {
		panic(errReentrant)
	}
	e.handling = true
	defer func() { e.handling = false }()

	if !e.queue.empty() {
		if in != NoUnit {
			// Keep raw input that arrives while draining, behind the queue.
			e.queue.push(queued{unit: in, redispatch: true})
		}
		head := e.queue.pop()
		if head.redispatch {
			return e.dispatch(head.unit, st, true)
		}
		return emit(head.unit)
	}
	if in == NoUnit {
		return suppress
	}
	return e.dispatch(in, st, false)
}

func (e *Engine) dispatch(unit rune, st State, redispatched bool) Result {
	now := e.clock()

	if st.Mode != e.mode {
		e.mode = st.Mode
		e.onModeChange(st.Mode)
	}

	if e.pending.stale(now, e.timeout) {
		logger.Printf("pending %q timed out", e.pending.seq)
		first, rest := e.pending.flush(queued{unit: unit, redispatch: true})
		e.queue.prepend(rest)
		return emit(first)
	}

	candidate := e.pending.seq + string(unit)
	if h := e.bindings.lookup(candidate, e.mode); h != nil {
		e.pending.clear()
		if r, ok := e.invoke(h, candidate, st); ok {
			return emit(r)
		}
		return suppress
	}

	if e.prefixes.has(candidate) {
		e.pending.extend(candidate, now)
		return suppress
	}

	if e.pending.active() {
		logger.Printf("pending %q abandoned by %q", e.pending.seq, unit)
		first, rest := e.pending.flush(queued{unit: unit})
		e.queue.prepend(rest)
		return emit(first)
	}

	if redispatched {
		return emit(unit)
	}
	return Result{Verdict: PassThrough, Unit: unit}
}

// Calls the handler and returns the first injected unit, if any.
func (e *Engine) invoke(h Handler, seq string, st State) (rune, bool) {
	c := &Call{engine: e, Seq: seq, State: st}
	e.call = c
	err := callHandler(h, c)
	e.call = nil
	if err != nil {
		e.onError(&HandlerError{Seq: seq, Err: err})
	}
	if c.injected == "" {
		return 0, false
	}
	q := literal(c.injected)
	head := q.pop()
	e.queue.prepend(q)
	return head.unit, true
}

func callHandler(h Handler, c *Call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("handler panicked: %w", rerr)
			} else {
				err = fmt.Errorf("handler panicked: %v", r)
			}
		}
	}()
	return h(c)
}

// HandlerError wraps the failure of a handler.
type HandlerError struct {
	Seq string
	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("binding %q: %v", e.Seq, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Call is passed to a Handler.
type Call struct {
	engine   *Engine
	injected string

	// The sequence that was matched.
	Seq string
	// The editor state at the time of the match.
	State State
}

// Inject is equivalent to calling Inject on the engine.
func (c *Call) Inject(text string) { c.engine.Inject(text) }

// Engine returns the engine the handler was invoked from.
func (c *Call) Engine() *Engine { return c.engine }
