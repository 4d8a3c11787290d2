package directive

import (
	"strconv"
	"strings"
)

// Directive is one annotation intent with its arguments. Directives are
// plain values built by the constructor functions below.
type Directive struct {
	Kind Kind

	// Message is the replacement note for the message-carrying kinds.
	Message string

	// FormatIndex is the 1-based position of the format string and
	// FirstVararg the 1-based position of the first checked argument.
	// Used by KindFormat only.
	FormatIndex int
	FirstVararg int

	// Positions are the 1-based argument indices asserted non-null.
	// Used by KindNonNull only.
	Positions []int
}

// Deprecated marks a function deprecated with no replacement.
func Deprecated() Directive {
	return Directive{Kind: KindDeprecated}
}

// DeprecatedMessage marks a function deprecated with a replacement note.
func DeprecatedMessage(msg string) Directive {
	return Directive{Kind: KindDeprecatedMessage, Message: msg}
}

// Internal marks internal API with no replacement.
func Internal() Directive {
	return Directive{Kind: KindInternal}
}

// InternalMessage marks internal API that kept public visibility for
// historical reasons; msg names the replacement.
func InternalMessage(msg string) Directive {
	return Directive{Kind: KindInternalMessage, Message: msg}
}

// FormatChecked marks a printf-style function. formatIndex is the
// 1-based position of the format string, firstVararg the 1-based
// position of the first argument it formats.
func FormatChecked(formatIndex, firstVararg int) Directive {
	return Directive{Kind: KindFormat, FormatIndex: formatIndex, FirstVararg: firstVararg}
}

// NonNull asserts the given 1-based argument positions are never null.
// The list is kept in the given order; duplicates are permitted but
// meaningless.
func NonNull(positions ...int) Directive {
	return Directive{Kind: KindNonNull, Positions: positions}
}

// NoReturn marks a function that never returns.
func NoReturn() Directive {
	return Directive{Kind: KindNoReturn}
}

// VisibilityInternal marks a symbol as internal to the library.
func VisibilityInternal() Directive {
	return Directive{Kind: KindInternal}
}

// VisibilityPrivate marks a symbol as private API.
func VisibilityPrivate() Directive {
	return Directive{Kind: KindPrivate}
}

// VisibilityPublic marks a symbol as public API.
func VisibilityPublic() Directive {
	return Directive{Kind: KindPublic}
}

// renderArgs converts the directive's typed arguments into the text
// slots atom rendering consumes.
func (d Directive) renderArgs() Args {
	args := Args{
		Message:     QuoteC(d.Message),
		FormatIndex: strconv.Itoa(d.FormatIndex),
		FirstVararg: strconv.Itoa(d.FirstVararg),
	}
	if len(d.Positions) > 0 {
		parts := make([]string, len(d.Positions))
		for i, pos := range d.Positions {
			parts[i] = strconv.Itoa(pos)
		}
		args.Positions = strings.Join(parts, ",")
	}
	return args
}
