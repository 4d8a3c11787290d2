package toolchain

import (
	"fmt"
	"slices"
	"strings"
)

// Family identifies a compiler family with a known capability surface.
type Family uint8

const (
	// FamilyUnknown is any compiler the classifier could not place.
	FamilyUnknown Family = iota
	// FamilyClang covers Clang and its vendor derivatives. Capabilities
	// are answered by extension probes, not version numbers.
	FamilyClang
	// FamilyGCC covers GCC and compilers that track its version macros.
	FamilyGCC
	// FamilyMSVC covers the Microsoft compiler, which has no GNU
	// attribute syntax at all.
	FamilyMSVC
)

// String returns the canonical lower-case family name.
func (f Family) String() string {
	switch f {
	case FamilyClang:
		return "clang"
	case FamilyGCC:
		return "gcc"
	case FamilyMSVC:
		return "msvc"
	default:
		return "unknown"
	}
}

// ParseFamily maps a family name (as written in manifests and CLI flags)
// to its enum value. The empty string is not a family.
func ParseFamily(name string) (Family, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clang":
		return FamilyClang, true
	case "gcc":
		return FamilyGCC, true
	case "msvc":
		return FamilyMSVC, true
	case "unknown", "none":
		return FamilyUnknown, true
	default:
		return FamilyUnknown, false
	}
}

// Clang extension tokens consulted by capability derivation. The names
// are the exact arguments Clang's __has_extension accepts.
const (
	// ExtDeprecatedMessage gates deprecation attributes that carry a
	// replacement message.
	ExtDeprecatedMessage = "attribute_deprecated_with_message"
	// ExtUnavailableMessage gates hard unavailability attributes that
	// carry a replacement message.
	ExtUnavailableMessage = "attribute_unavailable_with_message"
)

// KnownExtensions lists every extension token the derivation consults,
// in probe order.
func KnownExtensions() []string {
	return []string{ExtDeprecatedMessage, ExtUnavailableMessage}
}

// KnownExtension reports whether name is an extension token the
// derivation would ever consult.
func KnownExtension(name string) bool {
	return name == ExtDeprecatedMessage || name == ExtUnavailableMessage
}

// Profile describes one concrete toolchain as the inputs to capability
// derivation. Profiles are plain values; copying one is cheap and safe.
type Profile struct {
	Family Family

	// Major and Minor are capability-relevant for FamilyGCC only.
	// Detection still records them for other families so reports can
	// show what was found, but derivation ignores them there.
	Major int
	Minor int

	// Extensions holds the extension tokens a Clang probe reported as
	// available. Ignored for every other family.
	Extensions []string

	// NonNull opts in to non-null argument annotations. The probe for
	// this attribute postdates the rest of the attribute surface, so it
	// is never assumed; callers set it only when they verified support.
	NonNull bool
}

// HasExtension reports whether the profile's probe saw the named
// extension.
func (p Profile) HasExtension(name string) bool {
	return slices.Contains(p.Extensions, name)
}

// String renders a short human-readable identity such as "gcc 4.5" or
// "clang".
func (p Profile) String() string {
	if p.Major == 0 && p.Minor == 0 {
		return p.Family.String()
	}
	return fmt.Sprintf("%s %d.%d", p.Family, p.Major, p.Minor)
}
