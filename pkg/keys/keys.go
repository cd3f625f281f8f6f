// Package keys translates between human-readable key names and the units that
// a terminal delivers for them.
//
// A key is written as { Mod ('+' | '-') } BareKey, where Mod is one of Ctrl,
// Alt (or Meta) and their abbreviations C, A, M, all case-insensitive, and
// BareKey is either a single character or one of the names in this package,
// such as Enter, Tab and F1. A key sequence is a list of keys separated by
// whitespace. A word with no modifier that is not a key name is taken as the
// literal characters it contains, so "jk" and "j k" are the same sequence,
// and "git-co" is the seven characters it is made of. Text before a '-' or
// '+' only makes a modifier when it is one of the modifier names.
package keys

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Units of some keys.
const (
	Tab       = "\t"
	Enter     = "\r"
	Esc       = "\x1b"
	Backspace = "\x7f"
	Space     = " "
)

// BadKeyError is returned when a key cannot be parsed.
type BadKeyError struct {
	Key string
	Msg string
}

func (e *BadKeyError) Error() string {
	return fmt.Sprintf("bad key %q: %s", e.Key, e.Msg)
}

// Names of keys that do not correspond to a single printable character, and
// the units a terminal sends for them.
var namedKeys = map[string]string{
	"Tab": Tab, "Enter": Enter, "Esc": Esc, "Escape": Esc,
	"Backspace": Backspace, "Space": Space,

	"Up": "\x1b[A", "Down": "\x1b[B", "Right": "\x1b[C", "Left": "\x1b[D",
	"Home": "\x1b[H", "End": "\x1b[F",
	"Insert": "\x1b[2~", "Delete": "\x1b[3~",
	"PageUp": "\x1b[5~", "PageDown": "\x1b[6~",

	"F1": "\x1bOP", "F2": "\x1bOQ", "F3": "\x1bOR", "F4": "\x1bOS",
	"F5": "\x1b[15~", "F6": "\x1b[17~", "F7": "\x1b[18~", "F8": "\x1b[19~",
	"F9": "\x1b[20~", "F10": "\x1b[21~", "F11": "\x1b[23~", "F12": "\x1b[24~",
}

// Preferred names when describing units; "Escape" is an alias.
var nameOfUnits = func() map[string]string {
	m := make(map[string]string)
	for name, units := range namedKeys {
		if name == "Escape" {
			continue
		}
		m[units] = name
	}
	return m
}()

// Named multi-unit keys, longest first, for Describe.
var multiUnitKeys = func() []string {
	var l []string
	for units := range nameOfUnits {
		if utf8.RuneCountInString(units) > 1 {
			l = append(l, units)
		}
	}
	sort.Slice(l, func(i, j int) bool {
		if len(l[i]) != len(l[j]) {
			return len(l[i]) > len(l[j])
		}
		return l[i] < l[j]
	})
	return l
}()

type mod int

const (
	ctrl mod = 1 << iota
	alt
)

// modByName maps a lower-cased name to a modifier.
var modByName = map[string]mod{
	"c": ctrl, "ctrl": ctrl,
	"a": alt, "alt": alt,
	"m": alt, "meta": alt,
}

// Parse parses a single key and returns its units.
func Parse(s string) (string, error) {
	units, _, err := parse(s)
	return units, err
}

// Parses a key; the bool result reports whether s was a key rather than a
// literal.
func parse(s string) (string, bool, error) {
	orig := s
	var m mod
	for {
		i := strings.IndexAny(s, "+-")
		if i <= 0 || i == len(s)-1 {
			// No modifier, or a bare "-" or "+" key.
			break
		}
		mm, ok := modByName[strings.ToLower(s[:i])]
		if !ok {
			break
		}
		m |= mm
		s = s[i+1:]
	}

	var units string
	if units1, ok := namedKeys[s]; ok {
		units = units1
	} else if utf8.RuneCountInString(s) == 1 {
		units = s
	} else if m == 0 {
		return s, false, nil
	} else {
		return "", false, &BadKeyError{orig, "unknown key " + s}
	}

	if m&ctrl != 0 {
		r, ok := ctrlUnit(units)
		if !ok {
			return "", false, &BadKeyError{orig, "Ctrl cannot modify " + s}
		}
		units = string(r)
	}
	if m&alt != 0 {
		units = Esc + units
	}
	return units, true, nil
}

func ctrlUnit(s string) (rune, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	switch {
	case 'a' <= r && r <= 'z':
		return r - 'a' + 1, true
	case '@' <= r && r <= '_':
		return r & 0x1f, true
	case r == '?':
		return 0x7f, true
	}
	return 0, false
}

// ParseSeq parses a whitespace-separated sequence of keys and returns the
// concatenation of their units.
func ParseSeq(s string) (string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", &BadKeyError{s, "empty key sequence"}
	}
	var sb strings.Builder
	for _, field := range fields {
		units, _, err := parse(field)
		if err != nil {
			return "", err
		}
		sb.WriteString(units)
	}
	return sb.String(), nil
}

// Describe renders a string of units in key notation. It is the inverse of
// ParseSeq for sequences that ParseSeq produces, modulo aliases.
func Describe(units string) string {
	var parts []string
units:
	for units != "" {
		for _, named := range multiUnitKeys {
			if strings.HasPrefix(units, named) {
				parts = append(parts, nameOfUnits[named])
				units = units[len(named):]
				continue units
			}
		}
		r, size := utf8.DecodeRuneInString(units)
		units = units[size:]
		if name, ok := nameOfUnits[string(r)]; ok {
			if r == 0x1b && units != "" {
				// Alt- followed by the next key.
				next, nsize := utf8.DecodeRuneInString(units)
				units = units[nsize:]
				parts = append(parts, "Alt-"+describeRune(next))
				continue
			}
			parts = append(parts, name)
			continue
		}
		parts = append(parts, describeRune(r))
	}
	return strings.Join(parts, " ")
}

func describeRune(r rune) string {
	if name, ok := nameOfUnits[string(r)]; ok {
		return name
	}
	switch {
	case r == 0:
		return "Ctrl-@"
	case r < 0x20:
		return "Ctrl-" + string(r+'A'-1)
	}
	return string(r)
}
