// Package progtest contains utilities for testing prog.Program instances.
package progtest

import (
	"io"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/elves/keyseq/pkg/prog"
	"github.com/elves/keyseq/pkg/testutil"
)

// Case is a test case for Test. It is created by ThatKeyseq and refined with
// the chainable methods.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
}

func (o output) matches(s string) bool {
	if o.partial {
		return strings.Contains(s, o.content)
	}
	return s == o.content
}

// ThatKeyseq returns a new Case with the specified command-line arguments,
// excluding the program name.
func ThatKeyseq(args ...string) Case {
	return Case{args: append([]string{"keyseq"}, args...)}
}

// WithStdin returns an altered Case that provides the given input.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns an altered Case that requires the program to exit with
// 0 and write nothing to stdout or stderr.
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to exit with
// the given code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exit != c.want.exit {
				t.Errorf("got exit %v, want %v", r.exit, c.want.exit)
			}
			if !c.want.stdout.matches(r.stdout.content) {
				t.Errorf("got stdout %q, want %s", r.stdout.content, c.want.stdout)
			}
			if !c.want.stderr.matches(r.stderr.content) {
				t.Errorf("got stderr %q, want %s", r.stderr.content, c.want.stderr)
			}
		})
	}
}

func (o output) String() string {
	if o.partial {
		return "containing " + strconv.Quote(o.content)
	}
	return strconv.Quote(o.content)
}

// Run runs a Program with the given arguments. It returns the exit code and
// what the program wrote to stdout and stderr.
func Run(p prog.Program, args []string, stdin string) (exit int, stdout, stderr string) {
	r := run(p, append([]string{"keyseq"}, args...), stdin)
	return r.exit, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := testutil.MustPipe()
	// Writing to the pipe may block if stdin is large, so do it concurrently.
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	r1, w1 := testutil.MustPipe()
	r2, w2 := testutil.MustPipe()

	// Read stdout and stderr concurrently so that the program doesn't block
	// on a full pipe.
	stdout, stderr := readAllAsync(r1), readAllAsync(r2)
	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	r0.Close()

	return result{exit, output{content: <-stdout}, output{content: <-stderr}}
}

func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}
