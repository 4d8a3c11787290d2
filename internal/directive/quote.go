package directive

import "strings"

// QuoteC renders s as a C string literal. The escape set covers what
// annotation messages can plausibly contain; anything below 0x20 is
// emitted as a three-digit octal escape. Octal, not hex: C caps octal
// escapes at three digits, so a digit following the escape cannot be
// swallowed into it the way "\x01beef" would be.
func QuoteC(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			b.WriteByte('\\')
			b.WriteByte('0' + (c>>6)&7)
			b.WriteByte('0' + (c>>3)&7)
			b.WriteByte('0' + c&7)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
