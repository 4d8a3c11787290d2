package prelude

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MacroPrefix derives the macro prefix for a library name: diacritics
// stripped, upper-cased, every run of non-identifier characters folded
// into one underscore. "libcoffee" becomes "LIBCOFFEE", "café-io"
// becomes "CAFE_IO". An empty or fully non-identifier name yields "LIB".
func MacroPrefix(library string) string {
	folded := asciiFold(library)
	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z':
			r -= 'a' - 'A'
			fallthrough
		case r >= 'A' && r <= 'Z':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() == 0 {
				// Identifiers cannot start with a digit.
				continue
			}
			if pendingSep {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	if b.Len() == 0 {
		return "LIB"
	}
	return b.String()
}

// GuardMacro derives the include-guard macro from a macro prefix.
func GuardMacro(prefix string) string {
	return prefix + "_ANNOTATIONS_H"
}

// asciiFold decomposes the string and drops combining marks, so
// accented letters reduce to their ASCII base before prefix folding.
func asciiFold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
