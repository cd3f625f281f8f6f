package store

import (
	"path/filepath"

	"github.com/elves/keyseq/pkg/store/storedefs"
)

// TB is the subset of testing.TB used by MustTempStore.
type TB interface {
	TempDir() string
	Cleanup(func())
	Fatal(args ...any)
}

// MustTempStore returns a Store backed by a database in a temporary
// directory, closed when the test finishes.
func MustTempStore(t TB) storedefs.Store {
	st, err := NewStore(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
