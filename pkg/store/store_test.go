package store_test

import (
	"path/filepath"
	"testing"

	"github.com/elves/keyseq/pkg/store"
	"github.com/elves/keyseq/pkg/store/storetest"
)

func TestBindings(t *testing.T) {
	storetest.TestBindings(t, store.MustTempStore(t))
}

func TestAbbrs(t *testing.T) {
	storetest.TestAbbrs(t, store.MustTempStore(t))
}

func TestDir(t *testing.T) {
	storetest.TestDir(t, store.MustTempStore(t))
}

func TestBookmarks(t *testing.T) {
	storetest.TestBookmarks(t, store.MustTempStore(t))
}

func TestPersistsAcrossReopen(t *testing.T) {
	name := filepath.Join(t.TempDir(), "db")
	s, err := store.NewStore(name)
	if err != nil {
		t.Fatal(err)
	}
	s.SetAbbr("a", "b")
	s.Close()

	s, err = store.NewStore(name)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	abbrs, _ := s.Abbrs()
	if abbrs["a"] != "b" {
		t.Errorf("abbreviation lost after reopening: %v", abbrs)
	}
}

func TestNewStore_BadPath(t *testing.T) {
	_, err := store.NewStore(filepath.Join(t.TempDir(), "no", "such", "db"))
	if err == nil {
		t.Errorf("NewStore with bad path -> nil error")
	}
}
