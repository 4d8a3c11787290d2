package directive

// Kind identifies a directive's annotation intent. Each kind maps to
// exactly one generated macro.
type Kind uint8

const (
	// KindDeprecated marks a function deprecated with no replacement.
	KindDeprecated Kind = iota
	// KindDeprecatedMessage marks a function deprecated with a
	// replacement note.
	KindDeprecatedMessage
	// KindInternal marks internal API with no replacement; it doubles
	// as the internal visibility class.
	KindInternal
	// KindInternalMessage marks internal API with historical public
	// visibility and a replacement note.
	KindInternalMessage
	// KindFormat marks a printf-style function for format checking.
	KindFormat
	// KindNonNull asserts the listed pointer arguments are never null.
	KindNonNull
	// KindNoReturn marks a function that never returns.
	KindNoReturn
	// KindPrivate is the private visibility class.
	KindPrivate
	// KindPublic is the public visibility class.
	KindPublic
)

// String returns the kind's catalog name.
func (k Kind) String() string {
	switch k {
	case KindDeprecated:
		return "deprecated"
	case KindDeprecatedMessage:
		return "deprecated-msg"
	case KindInternal:
		return "internal"
	case KindInternalMessage:
		return "internal-msg"
	case KindFormat:
		return "format"
	case KindNonNull:
		return "nonnull"
	case KindNoReturn:
		return "noreturn"
	case KindPrivate:
		return "private"
	case KindPublic:
		return "public"
	default:
		return "invalid"
	}
}
