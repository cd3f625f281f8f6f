package dispatch

import (
	"time"
	"unicode/utf8"
)

// The sequence being accumulated. When seq is non-empty, it is always a member
// of the prefix index.
type pending struct {
	seq        string
	lastUpdate time.Time
}

func (p *pending) active() bool { return p.seq != "" }

func (p *pending) extend(seq string, now time.Time) {
	p.seq = seq
	p.lastUpdate = now
}

func (p *pending) stale(now time.Time, timeout time.Duration) bool {
	return p.active() && now.Sub(p.lastUpdate) > timeout
}

func (p *pending) clear() {
	*p = pending{}
}

// Abandons the pending sequence and the unit that killed it. The first unit of
// the sequence is returned to be emitted now; the rest of the sequence and the
// unit itself are returned in order for later delivery.
func (p *pending) flush(current queued) (rune, injectQueue) {
	first, size := utf8.DecodeRuneInString(p.seq)
	rest := literal(p.seq[size:])
	rest = append(rest, current)
	p.clear()
	return first, rest
}
