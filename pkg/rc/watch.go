package rc

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the rc file at path, and sends a reloaded Config whenever it
// changes. Errors loading the file are sent on the error channel. Both
// channels are closed once ctx is done.
//
// The directory containing path is watched rather than path itself, so that
// editors that replace the file on save are handled.
func Watch(ctx context.Context, path string) (<-chan *Config, <-chan error, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, nil, err
	}

	configs := make(chan *Config)
	errs := make(chan error)
	go func() {
		defer close(errs)
		defer close(configs)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				logger.Printf("%s changed (%s)", path, event.Op)
				cfg, err := Load(path)
				if err != nil {
					send(ctx, errs, err)
					continue
				}
				send(ctx, configs, cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				send(ctx, errs, err)
			}
		}
	}()
	return configs, errs, nil
}

func send[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}
