package location

import (
	"errors"
	"testing"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/store"
	"github.com/elves/keyseq/pkg/tt"
)

func TestStack(t *testing.T) {
	var s Stack
	if _, err := s.Pop(); err != ErrEmptyStack {
		t.Errorf("Pop on empty stack -> %v, want ErrEmptyStack", err)
	}
	s.Push("/a")
	s.Push("/b")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if d, _ := s.Peek(); d != "/b" {
		t.Errorf("Peek() = %q, want /b", d)
	}
	if d, _ := s.Pop(); d != "/b" {
		t.Errorf("Pop() = %q, want /b", d)
	}
	if d, _ := s.Pop(); d != "/a" {
		t.Errorf("Pop() = %q, want /a", d)
	}
}

func TestQuote(t *testing.T) {
	tt.Test(t, tt.Fn("Quote", Quote), tt.Table{
		tt.Args("/usr/local").Rets("/usr/local"),
		tt.Args("~/a-b_c.d").Rets("~/a-b_c.d"),
		tt.Args("").Rets("''"),
		tt.Args("/my dir").Rets("'/my dir'"),
		tt.Args("it's").Rets(`'it'\''s'`),
	})
}

func setupResolver(t *testing.T) *Resolver {
	st := store.MustTempStore(t)
	st.AddDir("/home/u/src/keyseq", 1)
	st.AddDir("/home/u/src/other", 1)
	st.AddDir("/home/u/src/other", 1)
	st.AddDir("/var/log", 1)
	st.SetBookmark("logs", "/var/log")
	return &Resolver{
		Store:     st,
		Bookmarks: map[string]string{"proj": "/home/u/proj"},
		Blacklist: map[string]struct{}{"/var/log": {}},
	}
}

func TestResolve(t *testing.T) {
	r := setupResolver(t)
	tt.Test(t, tt.Fn("Resolve", r.Resolve), tt.Table{
		tt.Args("proj").Rets("/home/u/proj", nil),
		tt.Args("logs").Rets("/var/log", nil),
		tt.Args("src").Rets("/home/u/src/other", nil),
		tt.Args("keyseq").Rets("/home/u/src/keyseq", nil),
		// Blacklisted.
		tt.Args("var").Rets("", ErrNoMatch),
		tt.Args("nowhere").Rets("", ErrNoMatch),
	})
}

func TestResolve_NoStore(t *testing.T) {
	r := &Resolver{Bookmarks: map[string]string{"a": "/a"}}
	tt.Test(t, tt.Fn("Resolve", r.Resolve), tt.Table{
		tt.Args("a").Rets("/a", nil),
		tt.Args("b").Rets("", ErrNoMatch),
	})
}

func typeAndCollect(e *dispatch.Engine, in rune, st dispatch.State) string {
	var out []rune
	if res := e.Handle(in, st); res.Verdict == dispatch.Emit {
		out = append(out, res.Unit)
	}
	for e.Pending() {
		if res := e.Handle(dispatch.NoUnit, st); res.Verdict == dispatch.Emit {
			out = append(out, res.Unit)
		}
	}
	return string(out)
}

func TestJumpHandler(t *testing.T) {
	r := setupResolver(t)
	var errs []error
	e := dispatch.New(dispatch.Spec{OnError: func(err error) { errs = append(errs, err) }})
	e.Bind("\x07", dispatch.Any, JumpHandler(r, "proj"))
	e.Bind("\x0f", dispatch.Any, JumpHandler(r, ""))
	e.Bind("\x0e", dispatch.Any, JumpHandler(r, "nowhere"))

	if got, want := typeAndCollect(e, '\x07', dispatch.State{}), "cd /home/u/proj\r"; got != want {
		t.Errorf("fixed query: got %q, want %q", got, want)
	}
	line := "keyseq"
	st := dispatch.State{Line: line, Cursor: len(line)}
	want := "\x7f\x7f\x7f\x7f\x7f\x7fcd /home/u/src/keyseq\r"
	if got := typeAndCollect(e, '\x0f', st); got != want {
		t.Errorf("query from line: got %q, want %q", got, want)
	}

	if got := typeAndCollect(e, '\x0e', dispatch.State{}); got != "" {
		t.Errorf("failed jump injected %q", got)
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrNoMatch) {
		t.Errorf("errors = %v, want one wrapping ErrNoMatch", errs)
	}
}

func TestPopHandler(t *testing.T) {
	var s Stack
	s.Push("/tmp/a b")
	var errs []error
	e := dispatch.New(dispatch.Spec{OnError: func(err error) { errs = append(errs, err) }})
	e.Bind("p", dispatch.Command, PopHandler(&s))

	st := dispatch.State{Mode: dispatch.CommandMode}
	if got, want := typeAndCollect(e, 'p', st), "cd '/tmp/a b'\r"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	typeAndCollect(e, 'p', st)
	if len(errs) != 1 || !errors.Is(errs[0], ErrEmptyStack) {
		t.Errorf("errors = %v, want one wrapping ErrEmptyStack", errs)
	}
}
