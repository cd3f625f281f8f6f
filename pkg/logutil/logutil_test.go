package logutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	logger := GetLogger("foo ")
	dir := t.TempDir()
	fname := filepath.Join(dir, "log")

	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { SetOutput(io.Discard) })

	logger.Println("out 1")
	SetOutput(io.Discard)
	logger.Println("out 2")

	content, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "foo ") || !strings.Contains(string(content), "out 1") {
		t.Errorf("log file content = %q, want it to contain prefix and first message", content)
	}
	if strings.Contains(string(content), "out 2") {
		t.Errorf("log file content = %q, want it to not contain second message", content)
	}
}

func TestSetOutputFile_Empty(t *testing.T) {
	if err := SetOutputFile(""); err != nil {
		t.Errorf("SetOutputFile(\"\") -> %v, want nil", err)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir", "log"))
	if err == nil {
		t.Errorf("SetOutputFile with bad path -> nil, want error")
	}
}
