// Package shell is the entry point for the interactive editor of keyseq.
package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elves/keyseq/pkg/fsutil"
	"github.com/elves/keyseq/pkg/logutil"
	"github.com/elves/keyseq/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the interactive subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("unknown command " + args[0])
	}
	cfg := &InteractConfig{Timeout: f.Timeout}

	if !f.NoRc {
		cfg.RC = f.RC
		if cfg.RC == "" {
			rc, err := fsutil.RCPath()
			if err != nil {
				fmt.Fprintln(fds[2], "Warning:", err)
			}
			cfg.RC = rc
		}
	}

	cfg.DB = f.DB
	if cfg.DB == "" {
		db, err := fsutil.DBPath()
		if err == nil {
			err = os.MkdirAll(filepath.Dir(db), 0700)
		}
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "Bindings and directory history will not be persisted.")
		} else {
			cfg.DB = db
		}
	}

	return Interact(fds, cfg)
}
