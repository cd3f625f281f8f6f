package dispatch

import "unicode/utf8"

// The set of strict prefixes of all bound sequences, in all scopes. It is
// derived from a bindingStore and always rebuilt from scratch.
type prefixIndex map[string]struct{}

func buildPrefixIndex(s *bindingStore) prefixIndex {
	idx := make(prefixIndex)
	for _, table := range s {
		for seq := range table {
			// Prefixes end on rune boundaries; the full sequence is excluded.
			for i := 0; i < len(seq); {
				_, size := utf8.DecodeRuneInString(seq[i:])
				i += size
				if i < len(seq) {
					idx[seq[:i]] = struct{}{}
				}
			}
		}
	}
	return idx
}

func (idx prefixIndex) has(seq string) bool {
	_, ok := idx[seq]
	return ok
}
