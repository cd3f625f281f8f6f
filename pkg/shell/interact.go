package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/editor"
	"github.com/elves/keyseq/pkg/events"
	"github.com/elves/keyseq/pkg/fsutil"
	"github.com/elves/keyseq/pkg/location"
	"github.com/elves/keyseq/pkg/rc"
	"github.com/elves/keyseq/pkg/store"
	"github.com/elves/keyseq/pkg/store/storedefs"
	"github.com/elves/keyseq/pkg/term"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	// Path of the rc file; empty to skip loading one.
	RC string
	// Path of the database; empty to run without one.
	DB string
	// Overrides the timeout in the rc file when positive.
	Timeout time.Duration
}

type session struct {
	fds     [3]*os.File
	cfg     *InteractConfig
	store   storedefs.Store
	engine  *dispatch.Engine
	applied *rc.Applied
	stack   *location.Stack
	// The working directory; shared with the resolver of jump-dir.
	blacklist map[string]struct{}
	terminal  *terminal
}

// Interact runs an interactive session. It returns when the input ends.
func Interact(fds [3]*os.File, cfg *InteractConfig) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &session{
		fds: fds, cfg: cfg,
		stack:     &location.Stack{},
		blacklist: map[string]struct{}{},
	}
	if cfg.DB != "" {
		st, err := store.NewStore(cfg.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open database:", err)
		} else {
			defer st.Close()
			s.store = st
		}
	}
	if wd, err := os.Getwd(); err == nil {
		s.blacklist[wd] = struct{}{}
	}

	bus := events.NewBus(func(err error) { logger.Println("hook failed:", err) })
	bus.Subscribe(events.BindingError, func(args ...any) error {
		fmt.Fprintf(fds[2], "\r\nbinding error: %v\r\n", args[0])
		return nil
	})
	s.engine = dispatch.New(dispatch.Spec{
		Timeout:      cfg.Timeout,
		OnModeChange: func(m dispatch.Mode) { bus.Publish(events.ModeChange, m) },
		OnError: func(err error) {
			logger.Println(err)
			bus.Publish(events.BindingError, err)
		},
	})

	reloads := make(chan func())
	if cfg.RC != "" {
		loaded, err := rc.Load(cfg.RC)
		if errors.Is(err, os.ErrNotExist) {
			loaded, err = &rc.Config{}, nil
		}
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			// Bindings in the database still apply.
			loaded = &rc.Config{}
		}
		s.apply(loaded)
		s.watch(ctx, reloads)
	} else {
		s.apply(&rc.Config{})
	}

	reader, err := term.NewReader(fds[0])
	if err != nil {
		return err
	}
	defer reader.Close()

	s.terminal = setupTerminal(fds[0], fds[2])
	defer s.terminal.restore()

	ed := editor.New(editor.Spec{
		Engine:  s.engine,
		In:      reader,
		Out:     fds[2],
		Width:   func() int { w, _ := term.Size(fds[2]); return w },
		Bus:     bus,
		Reloads: reloads,
	})
	for {
		ed.SetPrompt(fsutil.Getwd() + "> ")
		line, err := ed.ReadLine(ctx)
		if err == io.EOF {
			return nil
		} else if err == editor.ErrInterrupted {
			continue
		} else if err != nil {
			return err
		}
		if s.runLine(line) {
			return nil
		}
	}
}

func (s *session) apply(cfg *rc.Config) {
	s.applied.Unapply(s.engine)
	applied, err := rc.Apply(cfg, s.engine, rc.Env{
		Store: s.store, Stack: s.stack, FinderUI: s.fds[2], Blacklist: s.blacklist,
	})
	s.applied = applied
	if s.cfg.Timeout > 0 {
		s.engine.SetTimeout(s.cfg.Timeout)
	}
	if err != nil {
		fmt.Fprintln(s.fds[2], "Warning: errors in rc file:")
		fmt.Fprintln(s.fds[2], err)
	}
	logger.Printf("applied %d bindings", applied.Len())
}

// Forwards reloaded configs to the editor, which applies them between units.
func (s *session) watch(ctx context.Context, reloads chan<- func()) {
	configs, errs, err := rc.Watch(ctx, s.cfg.RC)
	if err != nil {
		fmt.Fprintln(s.fds[2], "Warning: cannot watch rc file:", err)
		return
	}
	go func() {
		for configs != nil || errs != nil {
			select {
			case cfg, ok := <-configs:
				if !ok {
					configs = nil
					continue
				}
				select {
				case reloads <- func() { s.apply(cfg) }:
				case <-ctx.Done():
					return
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Println("reloading rc file:", err)
			}
		}
	}()
}
