package toolchain

import "strings"

// Caps is the capability flag set annotation resolution consumes. Each
// flag answers one question: may an expansion for this toolchain
// reference that construct at all. Flags are derived once per profile
// and treated as immutable afterwards.
type Caps struct {
	// Deprecated: the toolchain understands a bare deprecation marker.
	Deprecated bool
	// DeprecatedMessage: deprecation markers may carry a message.
	DeprecatedMessage bool
	// UnavailableMessage: hard unavailability markers may carry a
	// message. GCC never grants this one.
	UnavailableMessage bool
	// Format: printf-style format/argument checking hints.
	Format bool
	// NoReturn: the function-never-returns hint.
	NoReturn bool
	// Visibility: symbol visibility classes (hidden/default).
	Visibility bool
	// NonNull: pointer-argument non-null hints. Explicit opt-in,
	// copied from the profile untouched.
	NonNull bool
}

// Capabilities derives the capability flags for the profile. The first
// matching family rule wins; nothing is consulted lazily afterwards.
func (p Profile) Capabilities() Caps {
	caps := Caps{NonNull: p.NonNull}
	switch p.Family {
	case FamilyClang:
		caps.Deprecated = true
		caps.Format = true
		caps.NoReturn = true
		caps.Visibility = true
		caps.DeprecatedMessage = p.HasExtension(ExtDeprecatedMessage)
		caps.UnavailableMessage = p.HasExtension(ExtUnavailableMessage)
	case FamilyGCC:
		if p.Major >= 3 {
			caps.Deprecated = true
			caps.Format = true
			caps.NoReturn = true
			caps.Visibility = true
		}
		if p.Major >= 5 || (p.Major == 4 && p.Minor >= 5) {
			caps.DeprecatedMessage = true
		}
	case FamilyMSVC, FamilyUnknown:
		// No GNU attribute surface. Export-keyword handling on MSVC is
		// a build-mode concern, not a capability.
	}
	return caps
}

// Names of the flags in stable display order.
const (
	capNameDeprecated         = "deprecated"
	capNameDeprecatedMessage  = "deprecated-message"
	capNameUnavailableMessage = "unavailable-message"
	capNameFormat             = "format"
	capNameNoReturn           = "noreturn"
	capNameVisibility         = "visibility"
	capNameNonNull            = "nonnull"
)

// Flag pairs a capability name with its value for table-style output.
type Flag struct {
	Name string
	On   bool
}

// Flags returns all capability flags in stable display order.
func (c Caps) Flags() []Flag {
	return []Flag{
		{capNameDeprecated, c.Deprecated},
		{capNameDeprecatedMessage, c.DeprecatedMessage},
		{capNameUnavailableMessage, c.UnavailableMessage},
		{capNameFormat, c.Format},
		{capNameNoReturn, c.NoReturn},
		{capNameVisibility, c.Visibility},
		{capNameNonNull, c.NonNull},
	}
}

// String renders the enabled flag names joined by commas, or "none".
// Intended for logs and test failure output.
func (c Caps) String() string {
	var names []string
	for _, f := range c.Flags() {
		if f.On {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
