// Package unicount provides the Unicode-aware length and indexing helpers
// the core diff engine needs: grapheme-cluster splitting for the
// character-level refiner (spec §4.4), and code-point-count <-> byte-offset
// conversion for the clipper's threshold arithmetic (spec §4.7, §9).
//
// Grounded on codalotl-codalotl's internal/q/uni package, which wraps the
// same clipperhouse/uax29/v2/graphemes iterator for width/iteration helpers.
package unicount

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// Graphemes splits s into grapheme clusters. A "character" in spec §4.4's
// sense is a grapheme cluster, not a rune: iterating runes would split a
// base letter from any combining marks attached to it.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	iter := graphemes.FromString(s)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// CodepointLen returns the Unicode code-point count of s, the unit spec
// §4.7/§9 mandates for all clip threshold comparisons.
func CodepointLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ByteIndexAtCodepoint converts a code-point offset into s to the
// corresponding byte offset. cp may equal CodepointLen(s) to mean "end of
// string". Panics if cp is out of [0, CodepointLen(s)].
func ByteIndexAtCodepoint(s string, cp int) int {
	if cp == 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == cp {
			return i
		}
		n++
	}
	if n == cp {
		return len(s)
	}
	panic("unicount: code-point offset out of range")
}

// CodepointIndexAtByte converts a byte offset into s to the corresponding
// code-point offset. b must land on a rune boundary.
func CodepointIndexAtByte(s string, b int) int {
	return utf8.RuneCountInString(s[:b])
}
