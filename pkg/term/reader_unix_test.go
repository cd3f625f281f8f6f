//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

package term

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/elves/keyseq/pkg/testutil"
	"github.com/elves/keyseq/pkg/tt"
)

func setupReader(t *testing.T) (*Reader, *os.File, *os.File) {
	t.Helper()
	r, w := testutil.MustPipe()
	reader, err := NewReader(r)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		reader.Close()
		r.Close()
		w.Close()
	})
	return reader, r, w
}

func readAll(s string) []rune {
	r, w := testutil.MustPipe()
	defer r.Close()
	reader, err := NewReader(r)
	testutil.Must(err)
	defer reader.Close()
	w.WriteString(s)
	w.Close()

	var units []rune
	for {
		u, err := reader.ReadUnit()
		if err != nil {
			return units
		}
		units = append(units, u)
	}
}

func TestReader_ReadUnit(t *testing.T) {
	tt.Test(t, tt.Fn("readAll", readAll), tt.Table{
		tt.Args("ab").Rets([]rune{'a', 'b'}),
		tt.Args("é\x1b[A").Rets([]rune{'é', '\x1b', '[', 'A'}),
		tt.Args("\xffa").Rets([]rune{'�', 'a'}),
		tt.Args("\xc3a").Rets([]rune{'�', 'a'}),
		tt.Args("日本").Rets([]rune{'日', '本'}),
		tt.Args("").Rets([]rune(nil)),
	})
}

func receive(t *testing.T, ch <-chan Unit) Unit {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(testutil.Scaled(2 * time.Second)):
		t.Fatal("timed out waiting for unit")
		return Unit{}
	}
}

func TestReader_StartDeliversUnitsAndError(t *testing.T) {
	reader, _, w := setupReader(t)
	w.WriteString("xy")
	w.Close()

	ch := reader.Start()
	defer reader.Stop()
	var units []rune
	for {
		u := receive(t, ch)
		if u.Err != nil {
			if u.Err != io.EOF {
				t.Errorf("got error %v, want io.EOF", u.Err)
			}
			break
		}
		units = append(units, u.Rune)
	}
	if string(units) != "xy" {
		t.Errorf("got %q, want %q", string(units), "xy")
	}
}

func TestReader_StopLeavesInputInFile(t *testing.T) {
	reader, r, w := setupReader(t)

	ch := reader.Start()
	w.WriteString("a")
	if u := receive(t, ch); u.Rune != 'a' {
		t.Errorf("got %q, want 'a'", u.Rune)
	}
	reader.Stop()

	// Input written while stopped is available to other readers of the file.
	w.WriteString("ls\n")
	got := make(chan string, 1)
	go func() {
		var buf [3]byte
		n, _ := io.ReadFull(r, buf[:])
		got <- string(buf[:n])
	}()
	select {
	case s := <-got:
		if s != "ls\n" {
			t.Errorf("direct read got %q, want %q", s, "ls\n")
		}
	case <-time.After(testutil.Scaled(2 * time.Second)):
		t.Fatal("direct read timed out; input was taken by the stopped reader")
	}

	// Reading resumes after restarting.
	ch = reader.Start()
	defer reader.Stop()
	w.WriteString("b")
	if u := receive(t, ch); u.Rune != 'b' {
		t.Errorf("got %q after restart, want 'b'", u.Rune)
	}
}

func TestReader_UnitsReadBeforeStopAreKept(t *testing.T) {
	reader, _, w := setupReader(t)
	w.WriteString("xyz")

	ch := reader.Start()
	if u := receive(t, ch); u.Rune != 'x' {
		t.Errorf("got %q, want 'x'", u.Rune)
	}
	reader.Stop()
	reader.Stop()

	ch = reader.Start()
	defer reader.Stop()
	var got []rune
	for len(got) < 2 {
		got = append(got, receive(t, ch).Rune)
	}
	if string(got) != "yz" {
		t.Errorf("got %q after restart, want %q", string(got), "yz")
	}
}
