// Package abbr implements abbreviations that expand when a trigger key is
// typed after them.
package abbr

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/elves/keyseq/pkg/dispatch"
	"github.com/elves/keyseq/pkg/keys"
)

// Expander holds abbreviations. Simple abbreviations expand anywhere after a
// word boundary; command abbreviations expand only in command position.
type Expander struct {
	Simple  map[string]string
	Command map[string]string
}

// Matches a bareword in command position at the end of the text: at the
// start of the line, or after a pipe, a semicolon, an ampersand or an opening
// parenthesis, possibly with whitespace in between.
var commandRegex = regexp.MustCompile(`(?:^|\||;|&|\()\s*([\p{L}\p{M}\p{N}!%+,\-./:@\\_<>*]+)$`)

// Expand looks for an abbreviation ending at byte offset dot of line. If one
// is found, it returns the abbreviation and its expansion.
func (x *Expander) Expand(line string, dot int) (abbr, full string, ok bool) {
	if dot < 0 || dot > len(line) {
		return "", "", false
	}
	before := line[:dot]

	if m := commandRegex.FindStringSubmatch(before); m != nil {
		if full, ok := x.Command[m[1]]; ok {
			return m[1], full, true
		}
	}

	// Find the longest simple abbreviation that starts at a word boundary.
	for a, f := range x.Simple {
		if len(a) <= len(abbr) || !strings.HasSuffix(before, a) {
			continue
		}
		if !atBoundary(before[:len(before)-len(a)], a) {
			continue
		}
		abbr, full = a, f
	}
	return abbr, full, abbr != ""
}

// Reports whether an abbreviation a that follows prefix starts a new word.
func atBoundary(prefix, a string) bool {
	if prefix == "" {
		return true
	}
	r1, _ := utf8.DecodeLastRuneInString(prefix)
	if unicode.IsSpace(r1) {
		return true
	}
	r2, _ := utf8.DecodeRuneInString(a)
	return isWordRune(r1) != isWordRune(r2)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Handler returns a handler to be bound to trigger in insert mode. It
// replaces an abbreviation before the cursor with its expansion, followed by
// the trigger. If there is no abbreviation, it just inserts the trigger.
func (x *Expander) Handler(trigger string) dispatch.Handler {
	return func(c *dispatch.Call) error {
		abbr, full, ok := x.Expand(c.State.Line, c.State.Cursor)
		if !ok {
			c.Inject(trigger)
			return nil
		}
		erase := strings.Repeat(keys.Backspace, utf8.RuneCountInString(abbr))
		c.Inject(erase + full + trigger)
		return nil
	}
}
