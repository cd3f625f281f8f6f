package luafn

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/elves/keyseq/pkg/dispatch"
)

type fixture struct {
	engine *dispatch.Engine
	errs   []error
}

func setup(t *testing.T, src string) *fixture {
	t.Helper()
	h, err := Compile("test", src)
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{}
	f.engine = dispatch.New(dispatch.Spec{OnError: func(err error) { f.errs = append(f.errs, err) }})
	f.engine.Bind("jk", dispatch.Any, h)
	return f
}

// Types "jk" and returns what was emitted.
func (f *fixture) trigger(st dispatch.State) string {
	var out []rune
	collect := func(res dispatch.Result) {
		if res.Verdict == dispatch.Emit {
			out = append(out, res.Unit)
		}
	}
	collect(f.engine.Handle('j', st))
	collect(f.engine.Handle('k', st))
	for f.engine.Pending() {
		collect(f.engine.Handle(dispatch.NoUnit, st))
	}
	return string(out)
}

func TestInject(t *testing.T) {
	f := setup(t, `inject("\27") inject("0")`)
	if got := f.trigger(dispatch.State{}); got != "\x1b0" {
		t.Errorf("got %q, want %q", got, "\x1b0")
	}
}

func TestStateGlobals(t *testing.T) {
	f := setup(t, `inject(seq() .. ":" .. mode() .. ":" .. line() .. ":" .. cursor())`)
	st := dispatch.State{Line: "echo", Cursor: 2, Mode: dispatch.CommandMode}
	want := "jk:command:echo:2"
	if got := f.trigger(st); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLibraries(t *testing.T) {
	f := setup(t, `inject(string.upper("ab") .. table.concat({1, 2}, ",") .. math.max(3, 4))`)
	if got, want := f.trigger(dispatch.State{}), "AB1,24"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSandbox(t *testing.T) {
	for _, src := range []string{
		`os.exit(1)`,
		`io.write("x")`,
		`dofile("/etc/passwd")`,
		`require("os")`,
	} {
		f := setup(t, src)
		f.trigger(dispatch.State{})
		if len(f.errs) != 1 {
			t.Errorf("%s: got errors %v, want one", src, f.errs)
		}
	}
}

func TestRuntimeError(t *testing.T) {
	f := setup(t, `inject("a") error("boom")`)
	got := f.trigger(dispatch.State{})
	if got != "a" {
		t.Errorf("got %q, want output injected before the error", got)
	}
	if len(f.errs) != 1 {
		t.Fatalf("got errors %v, want one", f.errs)
	}
	var herr *dispatch.HandlerError
	if !errors.As(f.errs[0], &herr) || herr.Seq != "jk" {
		t.Errorf("got %v, want *dispatch.HandlerError for jk", f.errs[0])
	}
	if !strings.Contains(f.errs[0].Error(), "boom") {
		t.Errorf("error %q doesn't mention boom", f.errs[0])
	}
}

func TestTimeout(t *testing.T) {
	h, err := CompileWithTimeout("loop", `while true do end`, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	e := dispatch.New(dispatch.Spec{OnError: func(err error) { errs = append(errs, err) }})
	e.Bind("x", dispatch.Any, h)
	e.Handle('x', dispatch.State{})
	if len(errs) != 1 {
		t.Errorf("got errors %v, want one", errs)
	}
}

func TestCompileError(t *testing.T) {
	_, err := Compile("bad", `inject(`)
	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.Name != "bad" {
		t.Errorf("got %v, want *CompileError for bad", err)
	}
}
