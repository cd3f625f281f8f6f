package testutil

import (
	"os"
	"path/filepath"
)

// Must panics if the error value is not nil. It is typically used like this:
//
//	testutil.Must(a_function())
//
// Where `a_function` returns a single error value. This is useful with
// functions like os.Mkdir to succinctly ensure the test fails to proceed if a
// "can't happen" failure does, in fact, happen.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// MustMkdirAll calls os.MkdirAll for each argument and panics if an error
// occurs.
func MustMkdirAll(names ...string) {
	for _, name := range names {
		Must(os.MkdirAll(name, 0700))
	}
}

// MustWriteFile writes data to a file, creating its parent directory if
// needed, and panics if an error occurs.
func MustWriteFile(filename, data string) {
	Must(os.MkdirAll(filepath.Dir(filename), 0700))
	Must(os.WriteFile(filename, []byte(data), 0600))
}

// MustPipe calls os.Pipe and panics if an error occurs.
func MustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	Must(err)
	return r, w
}
