// Package storecmd implements the subprogram that edits the persistent store
// from the command line.
package storecmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/fsutil"
	"github.com/elves/keyseq/pkg/keys"
	"github.com/elves/keyseq/pkg/prog"
	"github.com/elves/keyseq/pkg/store"
	"github.com/elves/keyseq/pkg/store/storedefs"
)

// Program is the store subprogram. It runs when the first argument is one of
// its commands.
type Program struct{}

type command struct {
	nargs int
	usage string
	run   func(st storedefs.Store, out io.Writer, args []string) error
}

var commands = map[string]command{
	"bind": {-1, "bind KEYS SCOPE (inject|lua|builtin) VALUE [ARG]", bind},
	"unbind": {2, "unbind KEYS SCOPE", func(st storedefs.Store, _ io.Writer, args []string) error {
		if _, err := dispatch.ParseScope(args[1]); err != nil {
			return err
		}
		return st.DelBinding(args[1], args[0])
	}},
	"bindings": {0, "bindings", listBindings},

	"abbr": {2, "abbr ABBR FULL", func(st storedefs.Store, _ io.Writer, args []string) error {
		return st.SetAbbr(args[0], args[1])
	}},
	"unabbr": {1, "unabbr ABBR", func(st storedefs.Store, _ io.Writer, args []string) error {
		return st.DelAbbr(args[0])
	}},
	"abbrs": {0, "abbrs", func(st storedefs.Store, out io.Writer, _ []string) error {
		m, err := st.Abbrs()
		printPairs(out, m)
		return err
	}},

	"bookmark": {2, "bookmark NAME DIR", func(st storedefs.Store, _ io.Writer, args []string) error {
		return st.SetBookmark(args[0], fsutil.TildeExpand(args[1]))
	}},
	"unbookmark": {1, "unbookmark NAME", func(st storedefs.Store, _ io.Writer, args []string) error {
		return st.DelBookmark(args[0])
	}},
	"bookmarks": {0, "bookmarks", func(st storedefs.Store, out io.Writer, _ []string) error {
		m, err := st.Bookmarks()
		printPairs(out, m)
		return err
	}},

	"dirs": {0, "dirs", func(st storedefs.Store, out io.Writer, _ []string) error {
		dirs, err := st.Dirs(storedefs.NoBlacklist)
		for _, d := range dirs {
			fmt.Fprintf(out, "%8.2f %s\n", d.Score, fsutil.TildeAbbr(d.Path))
		}
		return err
	}},
	"forget-dir": {1, "forget-dir DIR", func(st storedefs.Store, _ io.Writer, args []string) error {
		return st.DelDir(fsutil.TildeExpand(args[0]))
	}},
}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) == 0 {
		return prog.ErrNotSuitable
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return prog.ErrNotSuitable
	}
	args = args[1:]
	if cmd.nargs >= 0 && len(args) != cmd.nargs {
		return prog.BadUsage("usage: keyseq " + cmd.usage)
	}

	dbPath := f.DB
	if dbPath == "" {
		var err error
		dbPath, err = fsutil.DBPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			return err
		}
	}
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	if err := cmd.run(st, fds[1], args); err != nil {
		if _, ok := err.(usageError); ok {
			return prog.BadUsage("usage: keyseq " + cmd.usage)
		}
		return err
	}
	return nil
}

type usageError struct{}

func (usageError) Error() string { return "bad usage" }

func bind(st storedefs.Store, _ io.Writer, args []string) error {
	if len(args) != 4 && len(args) != 5 {
		return usageError{}
	}
	b := storedefs.Binding{Keys: args[0], Scope: args[1]}
	if _, err := keys.ParseSeq(b.Keys); err != nil {
		return err
	}
	if _, err := dispatch.ParseScope(b.Scope); err != nil {
		return err
	}
	switch kind, value := args[2], args[3]; kind {
	case "inject":
		b.Inject = value
	case "lua":
		b.Lua = value
	case "builtin":
		b.Builtin = value
	default:
		return usageError{}
	}
	if len(args) == 5 {
		b.Arg = args[4]
	}
	return st.PutBinding(b)
}

func listBindings(st storedefs.Store, out io.Writer, _ []string) error {
	bindings, err := st.Bindings()
	for _, b := range bindings {
		var action string
		switch {
		case b.Inject != "":
			action = "inject " + keys.Describe(b.Inject)
		case b.Lua != "":
			action = "lua " + fmt.Sprintf("%q", b.Lua)
		default:
			action = "builtin " + b.Builtin
			if b.Arg != "" {
				action += " " + b.Arg
			}
		}
		fmt.Fprintf(out, "%-8s %-16s %s\n", b.Scope, b.Keys, action)
	}
	return err
}

func printPairs(out io.Writer, m map[string]string) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "%s\t%s\n", name, m[name])
	}
}
