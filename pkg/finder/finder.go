// Package finder provides a handler that picks text with an external fuzzy
// finder such as fzf.
package finder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/logutil"
)

var logger = logutil.GetLogger("[finder] ")

// Command specifies the finder to run.
type Command struct {
	Name string
	Args []string
	// Where the finder draws its UI. Defaults to os.Stderr.
	UI io.Writer
}

// ParseCommand parses a command line of whitespace-separated words.
func ParseCommand(s string) (Command, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return Command{}, errors.New("empty finder command")
	}
	return Command{Name: words[0], Args: words[1:]}, nil
}

// Handler returns a handler that runs cmd with the current line on its
// standard input and injects the first line of its output. A finder that
// exits unsuccessfully without output is taken to be cancelled.
func Handler(cmd Command) dispatch.Handler {
	return func(c *dispatch.Call) error {
		picked, err := cmd.pick(c.State.Line)
		if err != nil {
			return err
		}
		c.Inject(picked)
		return nil
	}
}

func (cmd Command) pick(input string) (string, error) {
	var stdout bytes.Buffer
	ui := cmd.UI
	if ui == nil {
		ui = os.Stderr
	}
	p := exec.Command(cmd.Name, cmd.Args...)
	p.Stdin = strings.NewReader(input)
	p.Stdout = &stdout
	p.Stderr = ui

	err := p.Run()
	picked, _, _ := strings.Cut(stdout.String(), "\n")
	picked = strings.TrimSpace(picked)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && picked == "" {
			logger.Printf("%s cancelled with status %d", cmd.Name, exitErr.ExitCode())
			return "", nil
		}
		return "", fmt.Errorf("run finder %s: %w", cmd.Name, err)
	}
	return picked, nil
}
