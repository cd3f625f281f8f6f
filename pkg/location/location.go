// Package location resolves directories from bookmarks, a directory stack and
// the directory history, and provides handlers that jump to them.
package location

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/keys"
	"github.com/elves/keyseq/pkg/store/storedefs"
)

// ErrNoMatch is returned by Resolve when no directory matches the query.
var ErrNoMatch = errors.New("no matching directory")

// ErrEmptyStack is returned when popping or peeking an empty Stack.
var ErrEmptyStack = errors.New("directory stack is empty")

// Stack is a directory stack, as maintained by pushd and popd.
type Stack struct {
	dirs []string
}

// Push pushes a directory.
func (s *Stack) Push(dir string) { s.dirs = append(s.dirs, dir) }

// Pop pops the most recently pushed directory.
func (s *Stack) Pop() (string, error) {
	dir, err := s.Peek()
	if err == nil {
		s.dirs = s.dirs[:len(s.dirs)-1]
	}
	return dir, err
}

// Peek returns the most recently pushed directory without popping it.
func (s *Stack) Peek() (string, error) {
	if len(s.dirs) == 0 {
		return "", ErrEmptyStack
	}
	return s.dirs[len(s.dirs)-1], nil
}

// Len returns the number of directories on the stack.
func (s *Stack) Len() int { return len(s.dirs) }

// Store is the part of storedefs.Store used by Resolver.
type Store interface {
	Bookmark(name string) (string, error)
	Dirs(blacklist map[string]struct{}) ([]storedefs.Dir, error)
}

// Resolver resolves queries to directories.
type Resolver struct {
	Store Store
	// Bookmarks take precedence over those in Store.
	Bookmarks map[string]string
	// Directories never returned from the history, typically the working
	// directory.
	Blacklist map[string]struct{}
}

// Resolve resolves a query. A query naming a bookmark resolves to the
// bookmarked directory. Otherwise, it resolves to the directory in the history
// with the highest score whose path contains the query.
func (r *Resolver) Resolve(query string) (string, error) {
	if dir, ok := r.Bookmarks[query]; ok {
		return dir, nil
	}
	if r.Store == nil {
		return "", ErrNoMatch
	}
	dir, err := r.Store.Bookmark(query)
	if err == nil {
		return dir, nil
	} else if err != storedefs.ErrNoBookmark {
		return "", err
	}

	blacklist := r.Blacklist
	if blacklist == nil {
		blacklist = storedefs.NoBlacklist
	}
	dirs, err := r.Store.Dirs(blacklist)
	if err != nil {
		return "", err
	}
	for _, d := range dirs {
		if strings.Contains(d.Path, query) {
			return d.Path, nil
		}
	}
	return "", ErrNoMatch
}

// JumpHandler returns a handler that resolves query and injects a command to
// change to the resolved directory. If query is empty, the word before the
// cursor is used as the query and erased.
func JumpHandler(r *Resolver, query string) dispatch.Handler {
	return func(c *dispatch.Call) error {
		q, erase := query, ""
		if q == "" {
			q = wordBefore(c.State.Line, c.State.Cursor)
			erase = strings.Repeat(keys.Backspace, len([]rune(q)))
		}
		dir, err := r.Resolve(q)
		if err != nil {
			return fmt.Errorf("jump to %q: %w", q, err)
		}
		c.Inject(erase + "cd " + Quote(dir) + keys.Enter)
		return nil
	}
}

// PopHandler returns a handler that pops the stack and injects a command to
// change to the popped directory.
func PopHandler(s *Stack) dispatch.Handler {
	return func(c *dispatch.Call) error {
		dir, err := s.Pop()
		if err != nil {
			return err
		}
		c.Inject("cd " + Quote(dir) + keys.Enter)
		return nil
	}
}

func wordBefore(line string, dot int) string {
	if dot < 0 || dot > len(line) {
		return ""
	}
	before := line[:dot]
	return before[strings.LastIndexAny(before, " \t")+1:]
}

// Quote quotes s for a POSIX-like shell if it contains characters that are not
// safe in a bareword.
func Quote(s string) string {
	if s != "" && strings.IndexFunc(s, unsafeInBareword) == -1 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeInBareword(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return false
	case strings.ContainsRune("/._-+~:,@%", r):
		return false
	}
	return true
}
