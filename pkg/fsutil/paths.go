package fsutil

import (
	"os"
	"path/filepath"

	"github.com/elves/keyseq/pkg/env"
)

// RCPath returns the default path of the rc file,
// $XDG_CONFIG_HOME/keyseq/rc.yaml.
func RCPath() (string, error) {
	return xdgPath(env.XDG_CONFIG_HOME, ".config", "rc.yaml")
}

// DBPath returns the default path of the database, $XDG_STATE_HOME/keyseq/db.
func DBPath() (string, error) {
	return xdgPath(env.XDG_STATE_HOME, filepath.Join(".local", "state"), "db")
}

func xdgPath(envName, fallback, name string) (string, error) {
	if dir := os.Getenv(envName); dir != "" {
		return filepath.Join(dir, "keyseq", name), nil
	}
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, "keyseq", name), nil
}
