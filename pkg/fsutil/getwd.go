// Package fsutil provides filesystem utilities.
package fsutil

import (
	"errors"
	"os"
	"strings"

	"github.com/elves/keyseq/pkg/env"
)

// GetHome returns the home directory of the current user, preferring $HOME.
func GetHome() (string, error) {
	if home := os.Getenv(env.HOME); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("cannot determine home directory")
	}
	return home, nil
}

// Getwd returns path of the working directory in a format suitable as the
// prompt.
func Getwd() string {
	pwd, err := os.Getwd()
	if err != nil {
		return "?"
	}
	return TildeAbbr(pwd)
}

// TildeAbbr abbreviates the user's home directory to ~.
func TildeAbbr(path string) string {
	home, err := GetHome()
	if err != nil || home == "" || home == "/" {
		// If home is "" or "/", do not abbreviate because (1) it is likely a
		// problem with the environment and (2) it will make the path actually
		// longer.
		return path
	}
	if path == home {
		return "~"
	} else if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}

// TildeExpand expands a leading ~ to the user's home directory.
func TildeExpand(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := GetHome()
	if err != nil {
		return path
	}
	return home + path[1:]
}
