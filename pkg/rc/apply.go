package rc

import (
	"errors"
	"fmt"
	"io"

	"github.com/elves/keyseq/pkg/abbr"
	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/finder"
	"github.com/elves/keyseq/pkg/keys"
	"github.com/elves/keyseq/pkg/location"
	"github.com/elves/keyseq/pkg/luafn"
	"github.com/elves/keyseq/pkg/store/storedefs"
)

// Env provides what the builtins need. All fields are optional.
type Env struct {
	// Persisted bindings, abbreviations and bookmarks are applied along with
	// the Config; the Config takes precedence.
	Store storedefs.Store
	Stack *location.Stack
	// Where the finder draws its UI.
	FinderUI io.Writer
	// Directories never jumped to, typically the working directory.
	Blacklist map[string]struct{}
}

// Applied records the bindings made by Apply, so that they can be removed
// before a reloaded Config is applied.
type Applied struct {
	bindings []applied
}

type applied struct {
	seq   string
	scope dispatch.Scope
}

// Unapply removes the bindings made by Apply. It is a no-op on nil.
func (a *Applied) Unapply(eng *dispatch.Engine) {
	if a == nil {
		return
	}
	for _, b := range a.bindings {
		eng.Unbind(b.seq, b.scope)
	}
	a.bindings = nil
}

// Len returns the number of bindings made.
func (a *Applied) Len() int { return len(a.bindings) }

// Apply sets the timeout and binds the bindings of cfg, preceded by those
// persisted in env.Store. Bad bindings are skipped; the errors are joined and
// returned along with what was applied.
func Apply(cfg *Config, eng *dispatch.Engine, env Env) (*Applied, error) {
	eng.SetTimeout(cfg.Timeout)

	var errs []error
	bindings := cfg.Bindings
	simple, command, bookmarks := cfg.Abbreviations, cfg.CommandAbbreviations, cfg.Bookmarks
	if env.Store != nil {
		stored, err := env.Store.Bindings()
		if err != nil {
			errs = append(errs, err)
		}
		bindings = append(stored, bindings...)
		if abbrs, err := env.Store.Abbrs(); err == nil {
			simple = merge(abbrs, simple)
		} else {
			errs = append(errs, err)
		}
	}

	b := &builder{
		cfg:      cfg,
		env:      env,
		expander: &abbr.Expander{Simple: simple, Command: command},
		resolver: &location.Resolver{Bookmarks: bookmarks, Blacklist: env.Blacklist},
	}
	if env.Store != nil {
		b.resolver.Store = env.Store
	}

	a := &Applied{}
	for _, binding := range bindings {
		seq, scope, h, err := b.build(binding)
		if err == nil {
			err = eng.Bind(seq, scope, h)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %q (%s): %w", binding.Keys, binding.Scope, err))
			continue
		}
		a.bindings = append(a.bindings, applied{seq, scope})
	}
	return a, errors.Join(errs...)
}

func merge(low, high map[string]string) map[string]string {
	m := make(map[string]string, len(low)+len(high))
	for k, v := range low {
		m[k] = v
	}
	for k, v := range high {
		m[k] = v
	}
	return m
}

type builder struct {
	cfg      *Config
	env      Env
	expander *abbr.Expander
	resolver *location.Resolver
}

func (b *builder) build(binding storedefs.Binding) (string, dispatch.Scope, dispatch.Handler, error) {
	seq, err := keys.ParseSeq(binding.Keys)
	if err != nil {
		return "", 0, nil, err
	}
	scopeName := binding.Scope
	if scopeName == "" {
		scopeName = dispatch.Any.String()
	}
	scope, err := dispatch.ParseScope(scopeName)
	if err != nil {
		return "", 0, nil, err
	}

	n := 0
	for _, s := range []string{binding.Inject, binding.Lua, binding.Builtin} {
		if s != "" {
			n++
		}
	}
	if n != 1 {
		return "", 0, nil, errors.New("exactly one of inject, lua and builtin must be given")
	}

	var h dispatch.Handler
	switch {
	case binding.Inject != "":
		h = injectHandler(binding.Inject)
	case binding.Lua != "":
		h, err = luafn.Compile(binding.Keys, binding.Lua)
	default:
		h, err = b.builtin(binding.Builtin, binding.Arg)
	}
	return seq, scope, h, err
}

func injectHandler(text string) dispatch.Handler {
	return func(c *dispatch.Call) error {
		c.Inject(text)
		return nil
	}
}

// Names of builtins.
const (
	BuiltinExpandAbbr = "expand-abbr"
	BuiltinJumpDir    = "jump-dir"
	BuiltinPopDir     = "pop-dir"
	BuiltinFinder     = "finder"
)

func (b *builder) builtin(name, arg string) (dispatch.Handler, error) {
	switch name {
	case BuiltinExpandAbbr:
		trigger := arg
		if trigger == "" {
			trigger = keys.Space
		}
		return b.expander.Handler(trigger), nil
	case BuiltinJumpDir:
		return location.JumpHandler(b.resolver, arg), nil
	case BuiltinPopDir:
		if b.env.Stack == nil {
			return nil, errors.New("no directory stack")
		}
		return location.PopHandler(b.env.Stack), nil
	case BuiltinFinder:
		cmdline := arg
		if cmdline == "" {
			cmdline = b.cfg.Finder
		}
		cmd, err := finder.ParseCommand(cmdline)
		if err != nil {
			return nil, err
		}
		cmd.UI = b.env.FinderUI
		return finder.Handler(cmd), nil
	default:
		return nil, fmt.Errorf("unknown builtin %q", name)
	}
}
