// Package events implements a simple publish-subscribe bus for editor
// lifecycle events.
package events

import (
	"fmt"
	"sync"
)

// Names of events published by the editor.
const (
	ModeChange     = "mode-change"
	BeforeReadline = "before-readline"
	AfterReadline  = "after-readline"
	BindingError   = "binding-error"
)

// Hook is a function subscribed to an event.
type Hook func(args ...any) error

// Bus delivers published events to subscribed hooks. The zero value is not
// usable; use NewBus.
type Bus struct {
	mu     sync.Mutex
	hooks  map[string][]*entry
	onFail func(error)
}

type entry struct{ hook Hook }

// NewBus creates a new Bus. Errors returned by hooks are passed to onFail,
// which may be nil.
func NewBus(onFail func(error)) *Bus {
	if onFail == nil {
		onFail = func(error) {}
	}
	return &Bus{hooks: make(map[string][]*entry), onFail: onFail}
}

// Subscribe adds a hook for the named event, and returns a function that
// removes it.
func (b *Bus) Subscribe(name string, h Hook) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := &entry{h}
	b.hooks[name] = append(b.hooks[name], e)
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		hooks := b.hooks[name]
		for i, e2 := range hooks {
			if e2 == e {
				b.hooks[name] = append(hooks[:i:i], hooks[i+1:]...)
				return
			}
		}
	}
}

// Publish calls all hooks of the named event, in the order they were
// subscribed. A failing hook does not prevent later hooks from being called.
func (b *Bus) Publish(name string, args ...any) {
	b.mu.Lock()
	hooks := append([]*entry(nil), b.hooks[name]...)
	b.mu.Unlock()

	for i, e := range hooks {
		if err := e.hook(args...); err != nil {
			b.onFail(&HookError{name, i, err})
		}
	}
}

// HookError wraps an error returned by a hook.
type HookError struct {
	Event string
	Index int
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %s[%d]: %v", e.Event, e.Index, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
