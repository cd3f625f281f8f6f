// Package rc loads the rc file and applies it to a dispatch engine.
package rc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elves/keyseq/pkg/logutil"
	"github.com/elves/keyseq/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[rc] ")

// Config is the content of an rc file.
type Config struct {
	// Sequence timeout; zero means the default.
	Timeout  time.Duration       `yaml:"timeout"`
	Bindings []storedefs.Binding `yaml:"bindings"`
	// Simple abbreviations, expanded after any word boundary.
	Abbreviations map[string]string `yaml:"abbreviations"`
	// Abbreviations only expanded in command position.
	CommandAbbreviations map[string]string `yaml:"command-abbreviations"`
	Bookmarks            map[string]string `yaml:"bookmarks"`
	// Default command line of the finder builtin.
	Finder string `yaml:"finder"`
}

// Load reads and parses the rc file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses the content of an rc file. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("negative timeout %v", cfg.Timeout)
	}
	return cfg, nil
}
