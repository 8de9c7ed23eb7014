// Package slug derives URL slugs from display names.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the name, keeps alphanumerics, collapses whitespace and
// hyphen runs into single hyphens, strips everything else, and trims leading
// and trailing hyphens. "Craft  Beer & Co." becomes "craft-beer-co".
func Make(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}
