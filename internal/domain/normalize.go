package domain

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block (U+0300-U+036F).
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

// Normalize folds s for comparison: lowercase, canonical decomposition,
// diacritics removed, surrounding whitespace trimmed.
//
// Every comparison in the resolver must go through this function, otherwise
// "São Paulo" and "Sao Paulo" stop matching without any error.
func Normalize(s string) string {
	// transform.Chain keeps state, one per call
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		// only reachable on malformed input, fall back to a plain fold
		return strings.TrimSpace(strings.ToLower(s))
	}
	return strings.TrimSpace(folded)
}

// Slug turns a display name into an id fragment ("Le Marais" -> "le-marais").
func Slug(s string) string {
	s = Normalize(s)
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
