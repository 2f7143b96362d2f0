// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes characters and removes combining marks,
// so "Árbitro Técnico" becomes "Arbitro Tecnico".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make normalizes a name into a slug: lowercase, accents stripped,
// runs of non-alphanumeric characters collapsed into single hyphens.
// The result is idempotent: Make(Make(s)) == Make(s).
func Make(name string) string {
	s, _, err := transform.String(stripAccents, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
