package rc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elves/keyseq/pkg/testutil"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rc.yaml")
	testutil.MustWriteFile(path, "timeout: 1s\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	configs, errs, err := Watch(ctx, path)
	if err != nil {
		t.Fatal(err)
	}

	// Unrelated files in the same directory are ignored.
	testutil.MustWriteFile(filepath.Join(dir, "other"), "timeout: bad\n")
	testutil.MustWriteFile(path, "timeout: 2s\n")

	waitForTimeout(t, configs, errs, 2*time.Second)

	// Files replaced by rename are picked up too.
	tmp := filepath.Join(dir, "rc.yaml.tmp")
	testutil.MustWriteFile(tmp, "timeout: 3s\n")
	testutil.Must(os.Rename(tmp, path))
	waitForTimeout(t, configs, errs, 3*time.Second)

	cancel()
	for range configs {
	}
	for range errs {
	}
}

// Waits for a config with the given timeout. A write may be observed more than
// once, possibly half-done, so other configs and errors are skipped.
func waitForTimeout(t *testing.T, configs <-chan *Config, errs <-chan error, want time.Duration) {
	t.Helper()
	deadline := time.After(testutil.Scaled(5 * time.Second))
	for {
		select {
		case cfg := <-configs:
			if cfg.Timeout == want {
				return
			}
		case <-errs:
		case <-deadline:
			t.Fatalf("timed out waiting for config with timeout %v", want)
		}
	}
}

func TestWatch_ReportsLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	testutil.MustWriteFile(path, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	configs, errs, err := Watch(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.MustWriteFile(path, "no-such-field: 1\n")
	select {
	case <-errs:
	case cfg := <-configs:
		// The truncation may be seen before the write.
		if cfg.Timeout != 0 {
			t.Errorf("got config %v, want error", cfg)
		}
		select {
		case <-errs:
		case <-time.After(testutil.Scaled(5 * time.Second)):
			t.Fatal("timed out waiting for error")
		}
	case <-time.After(testutil.Scaled(5 * time.Second)):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatch_BadDirectory(t *testing.T) {
	_, _, err := Watch(context.Background(), "/nonexistent/dir/rc.yaml")
	if err == nil {
		t.Error("Watch -> no error, want error")
	}
}
