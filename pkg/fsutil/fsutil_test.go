package fsutil

import (
	"os"
	"testing"

	"github.com/elves/keyseq/pkg/env"
	"github.com/elves/keyseq/pkg/tt"
)

func TestTildeAbbrAndExpand(t *testing.T) {
	t.Setenv(env.HOME, "/home/u")
	tt.Test(t, tt.Fn("TildeAbbr", TildeAbbr), tt.Table{
		tt.Args("/home/u").Rets("~"),
		tt.Args("/home/u/src").Rets("~/src"),
		tt.Args("/home/user").Rets("/home/user"),
		tt.Args("/tmp").Rets("/tmp"),
	})
	tt.Test(t, tt.Fn("TildeExpand", TildeExpand), tt.Table{
		tt.Args("~").Rets("/home/u"),
		tt.Args("~/src").Rets("/home/u/src"),
		tt.Args("~other").Rets("~other"),
		tt.Args("/tmp").Rets("/tmp"),
	})
}

func TestTildeAbbr_RootHome(t *testing.T) {
	t.Setenv(env.HOME, "/")
	if got := TildeAbbr("/tmp"); got != "/tmp" {
		t.Errorf("TildeAbbr(/tmp) = %q with HOME=/", got)
	}
}

func TestGetwd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(env.HOME, dir)
	chdir(t, dir)
	if got := Getwd(); got != "~" {
		t.Errorf("Getwd() = %q, want ~", got)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv(env.HOME, "/home/u")
	t.Setenv(env.XDG_CONFIG_HOME, "")
	t.Setenv(env.XDG_STATE_HOME, "")
	tt.Test(t, tt.Fn("RCPath", RCPath), tt.Table{
		tt.Args().Rets("/home/u/.config/keyseq/rc.yaml", nil),
	})
	tt.Test(t, tt.Fn("DBPath", DBPath), tt.Table{
		tt.Args().Rets("/home/u/.local/state/keyseq/db", nil),
	})

	t.Setenv(env.XDG_CONFIG_HOME, "/cfg")
	t.Setenv(env.XDG_STATE_HOME, "/state")
	tt.Test(t, tt.Fn("RCPath", RCPath), tt.Table{
		tt.Args().Rets("/cfg/keyseq/rc.yaml", nil),
	})
	tt.Test(t, tt.Fn("DBPath", DBPath), tt.Table{
		tt.Args().Rets("/state/keyseq/db", nil),
	})
}

// chdir changes the working directory for the duration of the test,
// like testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}
