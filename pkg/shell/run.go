package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/elves/keyseq/pkg/env"
	"github.com/elves/keyseq/pkg/fsutil"
)

// Runs a line and reports whether the session should end. The builtins cd and
// exit are handled directly; everything else is run by the system shell.
func (s *session) runLine(line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "exit":
		return true
	case "cd":
		dir := "~"
		if arg := strings.TrimSpace(strings.TrimSpace(line)[len("cd"):]); arg != "" {
			dir = unquote(arg)
		}
		if err := s.chdir(fsutil.TildeExpand(dir)); err != nil {
			fmt.Fprintln(s.fds[2], "cd:", err)
		}
		return false
	}

	s.terminal.suspended(func() {
		if err := s.system(line); err != nil {
			fmt.Fprintln(s.fds[2], err)
		}
	})
	return false
}

// Changes the working directory, recording it in the directory history and
// pushing the old one on the directory stack.
func (s *session) chdir(dir string) error {
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	os.Setenv(env.PWD, wd)
	if old != "" {
		s.stack.Push(old)
	}
	clear(s.blacklist)
	s.blacklist[wd] = struct{}{}
	if s.store != nil {
		if err := s.store.AddDir(wd, 1); err != nil {
			logger.Println("add dir:", err)
		}
	}
	return nil
}

func (s *session) system(line string) error {
	sh := os.Getenv(env.SHELL)
	if sh == "" {
		sh = "sh"
	}
	cmd := exec.Command(sh, "-c", line)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = s.fds[0], s.fds[1], s.fds[2]

	// The command gets Ctrl-C; the session doesn't.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Printf("%q exited with %d", line, exitErr.ExitCode())
		return nil
	}
	return err
}

// Removes the quoting produced by jump-dir.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], `'\''`, `'`)
	}
	return s
}
