// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/keyseq/pkg/store/storedefs"
)

// TestBindings tests the binding functionality of a Store.
func TestBindings(t *testing.T, s storedefs.Store) {
	t.Helper()
	b1 := storedefs.Binding{Keys: "j k", Scope: "insert", Inject: "\x1b"}
	b2 := storedefs.Binding{Keys: "j k", Scope: "command", Lua: `inject("x")`}
	b3 := storedefs.Binding{Keys: "Ctrl-X d", Scope: "any", Builtin: "jump-dir", Arg: "proj"}
	for _, b := range []storedefs.Binding{b1, b2, b3} {
		if err := s.PutBinding(b); err != nil {
			t.Errorf("PutBinding(%v) -> %v", b, err)
		}
	}
	// Replace b1.
	b1.Inject = "!"
	if err := s.PutBinding(b1); err != nil {
		t.Errorf("PutBinding -> %v", err)
	}

	bindings, err := s.Bindings()
	if err != nil {
		t.Fatalf("Bindings() -> error %v", err)
	}
	want := []storedefs.Binding{b3, b2, b1}
	if diff := cmp.Diff(want, bindings); diff != "" {
		t.Errorf("Bindings() (-want +got):\n%s", diff)
	}

	if err := s.DelBinding("command", "j k"); err != nil {
		t.Errorf("DelBinding -> %v", err)
	}
	if err := s.DelBinding("command", "no such"); err != nil {
		t.Errorf("DelBinding of missing binding -> %v", err)
	}
	bindings, _ = s.Bindings()
	if diff := cmp.Diff([]storedefs.Binding{b3, b1}, bindings); diff != "" {
		t.Errorf("Bindings() after delete (-want +got):\n%s", diff)
	}
}

// TestAbbrs tests the abbreviation functionality of a Store.
func TestAbbrs(t *testing.T, s storedefs.Store) {
	t.Helper()
	s.SetAbbr("gco", "git checkout")
	s.SetAbbr("btw", "by the way")
	s.SetAbbr("btw", "BY THE WAY")
	s.DelAbbr("gco")
	s.DelAbbr("nonexistent")

	abbrs, err := s.Abbrs()
	if err != nil {
		t.Fatalf("Abbrs() -> error %v", err)
	}
	if diff := cmp.Diff(map[string]string{"btw": "BY THE WAY"}, abbrs); diff != "" {
		t.Errorf("Abbrs() (-want +got):\n%s", diff)
	}
}

// TestDir tests the directory history functionality of a Store.
func TestDir(t *testing.T, s storedefs.Store) {
	t.Helper()
	for _, path := range []string{"/usr/local/bin", "/usr", "/usr/local/bin"} {
		if err := s.AddDir(path, 1); err != nil {
			t.Errorf("AddDir(%q) -> %v", path, err)
		}
	}
	s.AddDir("/tmp", 1)
	s.AddDir("/tmp/removed", 1)
	s.DelDir("/tmp/removed")

	dirs, err := s.Dirs(map[string]struct{}{"/tmp": {}})
	if err != nil {
		t.Fatalf("Dirs() -> error %v", err)
	}
	var paths []string
	for _, d := range dirs {
		paths = append(paths, d.Path)
	}
	want := []string{"/usr/local/bin", "/usr"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Dirs() paths (-want +got):\n%s", diff)
	}
	for i := 1; i < len(dirs); i++ {
		if dirs[i].Score > dirs[i-1].Score {
			t.Errorf("Dirs() not sorted by score: %v", dirs)
		}
	}

	all, _ := s.Dirs(storedefs.NoBlacklist)
	if len(all) != 3 {
		t.Errorf("Dirs(NoBlacklist) returned %d dirs, want 3", len(all))
	}
}

// TestBookmarks tests the bookmark functionality of a Store.
func TestBookmarks(t *testing.T, s storedefs.Store) {
	t.Helper()
	s.SetBookmark("proj", "/home/u/proj")
	s.SetBookmark("tmp", "/tmp")
	s.DelBookmark("tmp")

	dir, err := s.Bookmark("proj")
	if dir != "/home/u/proj" || err != nil {
		t.Errorf("Bookmark(proj) -> (%q, %v), want (/home/u/proj, nil)", dir, err)
	}
	_, err = s.Bookmark("tmp")
	if err != storedefs.ErrNoBookmark {
		t.Errorf("Bookmark(tmp) -> error %v, want ErrNoBookmark", err)
	}
	all, err := s.Bookmarks()
	if diff := cmp.Diff(map[string]string{"proj": "/home/u/proj"}, all); diff != "" || err != nil {
		t.Errorf("Bookmarks() -> error %v, diff (-want +got):\n%s", err, diff)
	}
}
