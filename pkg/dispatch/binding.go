package dispatch

import "fmt"

// Scope is the editing-mode context a binding applies to.
type Scope int

// Possible values of Scope.
const (
	// Insert bindings are consulted only in insert mode.
	Insert Scope = iota
	// Command bindings are consulted only in command mode.
	Command
	// Any bindings are consulted in both modes, but are shadowed by a binding
	// for the same sequence in the scope of the current mode.
	Any

	numScopes = iota
)

var scopeNames = [...]string{Insert: "insert", Command: "command", Any: "any"}

func (s Scope) String() string {
	if s.valid() {
		return scopeNames[s]
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

func (s Scope) valid() bool { return 0 <= s && s < numScopes }

// ParseScope parses the name of a scope, as returned by Scope.String.
func ParseScope(name string) (Scope, error) {
	for i, n := range scopeNames {
		if n == name {
			return Scope(i), nil
		}
	}
	return -1, &ConfigError{Msg: "unknown scope " + fmt.Sprintf("%q", name)}
}

// ConfigError is returned by Bind and Unbind when their arguments are invalid.
// It is never fatal to the engine.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "bad binding: " + e.Msg }

// Handler is invoked synchronously when its sequence is matched. It may call
// (*Call).Inject to produce output. A non-nil error is reported to the
// engine's error reporter; it is never retried.
type Handler func(c *Call) error

// A set of three binding tables, one per scope.
type bindingStore [numScopes]map[string]Handler

func newBindingStore() bindingStore {
	var s bindingStore
	for i := range s {
		s[i] = make(map[string]Handler)
	}
	return s
}

func (s *bindingStore) put(seq string, scope Scope, h Handler) {
	s[scope][seq] = h
}

func (s *bindingStore) del(seq string, scope Scope) {
	delete(s[scope], seq)
}

// Looks up seq in the Any table, then overrides with the table for mode.
func (s *bindingStore) lookup(seq string, mode Mode) Handler {
	h := s[Any][seq]
	if modal, ok := s[mode.scope()][seq]; ok {
		h = modal
	}
	return h
}

func checkScope(scope Scope) error {
	if !scope.valid() {
		return &ConfigError{Msg: "unknown scope " + scope.String()}
	}
	return nil
}
