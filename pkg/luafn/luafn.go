// Package luafn compiles Lua source into binding handlers.
//
// Each invocation of a handler runs in a fresh Lua state with only the base,
// string, table and math libraries. The following globals are available to
// the script:
//
//	inject(s)  inject s into the editor
//	line()     the line at the time the binding matched
//	cursor()   the cursor position, in bytes
//	mode()     "insert" or "command"
//	seq()      the sequence that matched
package luafn

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/logutil"
)

var logger = logutil.GetLogger("[luafn] ")

// DefaultTimeout bounds the run time of a single invocation.
const DefaultTimeout = time.Second

// Globals removed from the base library.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring"}

// CompileError is returned by Compile when the source cannot be parsed.
type CompileError struct {
	Name string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile lua handler %s: %v", e.Name, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile compiles src, using name in error messages, and returns a handler
// that runs it.
func Compile(name, src string) (dispatch.Handler, error) {
	return CompileWithTimeout(name, src, DefaultTimeout)
}

// CompileWithTimeout is like Compile, but with a custom bound on the run time
// of each invocation.
func CompileWithTimeout(name, src string, timeout time.Duration) (dispatch.Handler, error) {
	chunk, err := parse.Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, &CompileError{name, err}
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, &CompileError{name, err}
	}
	return func(c *dispatch.Call) error {
		return run(proto, c, timeout)
	}, nil
}

func run(proto *lua.FunctionProto, c *dispatch.Call, timeout time.Duration) error {
	L := newState(c)
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	L.SetContext(ctx)

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, 0, nil); err != nil {
		return fmt.Errorf("lua %s: %w", proto.SourceName, err)
	}
	return nil
}

func newState(c *dispatch.Call) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		logger.Println(strings.Join(parts, "\t"))
		return 0
	}))
	L.SetGlobal("inject", L.NewFunction(func(L *lua.LState) int {
		c.Inject(L.CheckString(1))
		return 0
	}))
	stringGetter := func(name string, s string) {
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LString(s))
			return 1
		}))
	}
	stringGetter("line", c.State.Line)
	stringGetter("mode", c.State.Mode.String())
	stringGetter("seq", c.Seq)
	L.SetGlobal("cursor", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(c.State.Cursor))
		return 1
	}))
	return L
}
