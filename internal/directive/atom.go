package directive

// Atom is one attribute fragment in a resolution plan.
type Atom uint8

const (
	// AtomDeprecated is the bare deprecation marker.
	AtomDeprecated Atom = iota
	// AtomDeprecatedMessage is the deprecation marker with a note.
	AtomDeprecatedMessage
	// AtomUnavailable removes a symbol from the consumer's view.
	AtomUnavailable
	// AtomUnavailableMessage removes a symbol with a note.
	AtomUnavailableMessage
	// AtomFormat is the printf-style format check.
	AtomFormat
	// AtomNonNull is the non-null argument check.
	AtomNonNull
	// AtomNoReturn marks a function that never returns.
	AtomNoReturn
	// AtomVisHidden is the hidden visibility class.
	AtomVisHidden
	// AtomVisDefault is the default visibility class.
	AtomVisDefault
	// AtomDLLExport is the explicit export keyword for DLL builds.
	AtomDLLExport
	// AtomPublic references the public visibility marker. It renders
	// to no text itself; resolution splices in the public plan and the
	// header renderer names the public macro instead.
	AtomPublic
)

// String returns the atom's display name, as shown by plan listings.
func (a Atom) String() string {
	switch a {
	case AtomDeprecated:
		return "deprecated"
	case AtomDeprecatedMessage:
		return "deprecated-message"
	case AtomUnavailable:
		return "unavailable"
	case AtomUnavailableMessage:
		return "unavailable-message"
	case AtomFormat:
		return "format"
	case AtomNonNull:
		return "nonnull"
	case AtomNoReturn:
		return "noreturn"
	case AtomVisHidden:
		return "visibility-hidden"
	case AtomVisDefault:
		return "visibility-default"
	case AtomDLLExport:
		return "dllexport"
	case AtomPublic:
		return "public-marker"
	default:
		return "invalid"
	}
}

// Args carries the text slots atom rendering fills in. Resolution puts
// concrete values in them; the header renderer puts macro parameter
// names in them. Either way the slot text is inserted verbatim.
type Args struct {
	// Message is a complete C string literal or a macro parameter.
	Message string
	// FormatIndex and FirstVararg are 1-based positions as text.
	FormatIndex string
	FirstVararg string
	// Positions is the comma-joined non-null index list.
	Positions string
}

// Render returns the attribute text for the atom with the given slots.
// AtomPublic renders as empty text; its expansion is the caller's job.
func (a Atom) Render(args Args) string {
	switch a {
	case AtomDeprecated:
		return "__attribute__ ((deprecated))"
	case AtomDeprecatedMessage:
		return "__attribute__ ((deprecated(" + args.Message + ")))"
	case AtomUnavailable:
		return "__attribute__ ((unavailable))"
	case AtomUnavailableMessage:
		return "__attribute__ ((unavailable(" + args.Message + ")))"
	case AtomFormat:
		return "__attribute__ ((__format__(__printf__, " + args.FormatIndex + "," + args.FirstVararg + ")))"
	case AtomNonNull:
		return "__attribute__ ((nonnull(" + args.Positions + ")))"
	case AtomNoReturn:
		return "__attribute__ ((noreturn))"
	case AtomVisHidden:
		return `__attribute__ ((visibility("hidden")))`
	case AtomVisDefault:
		return `__attribute__ ((visibility("default")))`
	case AtomDLLExport:
		return "__declspec(dllexport)"
	default:
		return ""
	}
}
