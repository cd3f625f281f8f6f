package keys

import (
	"testing"

	"github.com/elves/keyseq/pkg/tt"
)

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("Parse", Parse), tt.Table{
		tt.Args("x").Rets("x", nil),
		tt.Args("Tab").Rets("\t", nil),
		tt.Args("Enter").Rets("\r", nil),
		tt.Args("F1").Rets("\x1bOP", nil),
		tt.Args("-").Rets("-", nil),

		// Ctrl- keys are case-insensitive.
		tt.Args("Ctrl-x").Rets("\x18", nil),
		tt.Args("C-X").Rets("\x18", nil),
		tt.Args("c+x").Rets("\x18", nil),
		tt.Args("Ctrl-[").Rets("\x1b", nil),
		tt.Args("Ctrl-?").Rets("\x7f", nil),

		// Alt- keys are case-sensitive and prefix the key with Esc.
		tt.Args("Alt-x").Rets("\x1bx", nil),
		tt.Args("M-X").Rets("\x1bX", nil),
		tt.Args("Meta-.").Rets("\x1b.", nil),
		tt.Args("Alt-Ctrl-x").Rets("\x1b\x18", nil),
		tt.Args("Alt-Up").Rets("\x1b\x1b[A", nil),

		// Words whose prefix is not a modifier name are literal.
		tt.Args("git-co").Rets("git-co", nil),
		tt.Args("Super-x").Rets("Super-x", nil),
		tt.Args("x+y").Rets("x+y", nil),
		// A single-letter modifier abbreviation still counts.
		tt.Args("a-b").Rets("\x1bb", nil),

		// Errors.
		tt.Args("Ctrl-git-x").Rets("", tt.ErrorOfType(&BadKeyError{})),
		tt.Args("Ctrl-F13").Rets("", tt.ErrorOfType(&BadKeyError{})),
		tt.Args("Ctrl-Up").Rets("", tt.ErrorOfType(&BadKeyError{})),
		tt.Args("Ctrl-1").Rets("", tt.ErrorOfType(&BadKeyError{})),
	})
}

func TestParseSeq(t *testing.T) {
	tt.Test(t, tt.Fn("ParseSeq", ParseSeq), tt.Table{
		tt.Args("j k").Rets("jk", nil),
		tt.Args("jk").Rets("jk", nil),
		tt.Args("  Ctrl-X   Ctrl-E ").Rets("\x18\x05", nil),
		tt.Args("g g").Rets("gg", nil),
		tt.Args("Esc Space").Rets("\x1b ", nil),
		tt.Args("日本").Rets("日本", nil),

		tt.Args("").Rets("", tt.ErrorOfType(&BadKeyError{})),
		tt.Args("   ").Rets("", tt.ErrorOfType(&BadKeyError{})),
		tt.Args("x Hyper-y").Rets("xHyper-y", nil),
		tt.Args("git-co Enter").Rets("git-co\r", nil),
		tt.Args("x Ctrl-foo-y").Rets("", tt.ErrorOfType(&BadKeyError{})),
	})
}

func TestDescribe(t *testing.T) {
	tt.Test(t, tt.Fn("Describe", Describe), tt.Table{
		tt.Args("").Rets(""),
		tt.Args("jk").Rets("j k"),
		tt.Args("\x18\x05").Rets("Ctrl-X Ctrl-E"),
		tt.Args("\x1b").Rets("Esc"),
		tt.Args("\x1bx").Rets("Alt-x"),
		tt.Args("\x1b[A").Rets("Up"),
		tt.Args("\x1bOPq").Rets("F1 q"),
		tt.Args("a b").Rets("a Space b"),
		tt.Args("\t\r\x7f").Rets("Tab Enter Backspace"),
		tt.Args("\x00").Rets("Ctrl-@"),
	})
}

func TestDescribeRoundTrip(t *testing.T) {
	for _, s := range []string{"Ctrl-X Ctrl-E", "F5", "Alt-x y", "Up Down"} {
		units, err := ParseSeq(s)
		if err != nil {
			t.Errorf("ParseSeq(%q) -> error %v", s, err)
			continue
		}
		if got := Describe(units); got != s {
			t.Errorf("Describe(ParseSeq(%q)) -> %q", s, got)
		}
	}
}

func TestBadKeyErrorMessage(t *testing.T) {
	_, err := Parse("Super-x")
	if got, want := err.Error(), `bad key "Super-x": bad modifier super`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
