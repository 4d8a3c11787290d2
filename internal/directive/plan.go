package directive

import "sigil/internal/toolchain"

// Plan picks the attribute atoms for a directive kind under the given
// capability flags and build mode. An empty plan is a no-op expansion.
// The returned slice is freshly allocated on every call.
//
// The branch order inside each kind is load-bearing: the vendor-native
// rows outrank the generic capability rows and must stay first.
func Plan(kind Kind, caps toolchain.Caps, mode Mode) []Atom {
	switch kind {
	case KindDeprecated:
		return planDeprecated(false, caps, mode)
	case KindDeprecatedMessage:
		return planDeprecated(true, caps, mode)
	case KindInternal:
		if caps.Visibility {
			return []Atom{AtomVisHidden}
		}
		return nil
	case KindInternalMessage:
		return planInternalMessage(caps, mode)
	case KindFormat:
		if caps.Format {
			return []Atom{AtomFormat}
		}
		return nil
	case KindNonNull:
		if caps.NonNull {
			return []Atom{AtomNonNull}
		}
		return nil
	case KindNoReturn:
		if caps.NoReturn {
			return []Atom{AtomNoReturn}
		}
		return nil
	case KindPrivate, KindPublic:
		return planVisibilityDefault(caps, mode)
	}
	return nil
}

// planDeprecated resolves both deprecation kinds. Precedence, top to
// bottom: incapable compilers and the library's own build reduce to the
// public marker; the vendor-native platform escalates exclusion to a
// hard removal signal; generic compilers escalate only when they can
// attach the message to it; everything else degrades to the strongest
// deprecation marker available.
func planDeprecated(withMessage bool, caps toolchain.Caps, mode Mode) []Atom {
	switch {
	case !caps.Deprecated || mode.LibraryBuild:
		return []Atom{AtomPublic}
	case mode.AppleNative && mode.NoDeprecated:
		return []Atom{unavailableAtom(withMessage), AtomPublic}
	case mode.AppleNative:
		return []Atom{deprecatedAtom(withMessage), AtomPublic}
	case caps.UnavailableMessage && mode.NoDeprecated:
		return []Atom{unavailableAtom(withMessage), AtomPublic}
	default:
		return []Atom{deprecatedAtom(withMessage && caps.DeprecatedMessage), AtomPublic}
	}
}

// planInternalMessage resolves the internal-with-replacement kind. The
// marker always carries public visibility; the deprecation side walks
// down from unavailable-with-message to a bare deprecation marker.
func planInternalMessage(caps toolchain.Caps, mode Mode) []Atom {
	switch {
	case !caps.Deprecated || mode.LibraryBuild:
		return []Atom{AtomPublic}
	case caps.UnavailableMessage:
		return []Atom{AtomUnavailableMessage, AtomPublic}
	case caps.DeprecatedMessage:
		return []Atom{AtomDeprecatedMessage, AtomPublic}
	default:
		return []Atom{AtomDeprecated, AtomPublic}
	}
}

// planVisibilityDefault resolves the private and public classes, which
// no compiler can tell apart. Without visibility support the export
// keyword applies on explicit export builds only.
func planVisibilityDefault(caps toolchain.Caps, mode Mode) []Atom {
	switch {
	case caps.Visibility:
		return []Atom{AtomVisDefault}
	case mode.ExportBuild:
		return []Atom{AtomDLLExport}
	default:
		return nil
	}
}

func unavailableAtom(withMessage bool) Atom {
	if withMessage {
		return AtomUnavailableMessage
	}
	return AtomUnavailable
}

func deprecatedAtom(withMessage bool) Atom {
	if withMessage {
		return AtomDeprecatedMessage
	}
	return AtomDeprecated
}
