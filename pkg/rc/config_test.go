package rc

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/keyseq/pkg/store/storedefs"
	"github.com/elves/keyseq/pkg/testutil"
)

const sampleRc = `
timeout: 150ms
bindings:
  - keys: "j k"
    scope: insert
    inject: "\x1b"
  - keys: "Ctrl-X Ctrl-D"
    builtin: jump-dir
    arg: proj
  - keys: "Ctrl-X u"
    lua: inject(string.upper(line()))
abbreviations:
  tmp: /tmp
command-abbreviations:
  gco: git checkout
bookmarks:
  proj: /home/me/proj
finder: fzf --height 40%
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleRc))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Timeout: 150 * time.Millisecond,
		Bindings: []storedefs.Binding{
			{Keys: "j k", Scope: "insert", Inject: "\x1b"},
			{Keys: "Ctrl-X Ctrl-D", Builtin: "jump-dir", Arg: "proj"},
			{Keys: "Ctrl-X u", Lua: "inject(string.upper(line()))"},
		},
		Abbreviations:        map[string]string{"tmp": "/tmp"},
		CommandAbbreviations: map[string]string{"gco": "git checkout"},
		Bookmarks:            map[string]string{"proj": "/home/me/proj"},
		Finder:               "fzf --height 40%",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse (-want +got):\n%s", diff)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("Parse(nil) (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{
		"timeout: soon",
		"timeout: -1s",
		"bindngs: []",
		"bindings:\n  - keys: a\n    injct: b",
		"bindings: {",
	} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Errorf("Parse(%q) -> no error, want error", src)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	testutil.MustWriteFile(path, "timeout: 1s\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("Timeout = %v, want 1s", cfg.Timeout)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("Load of missing file -> no error")
	}
}
