package directive

import "strings"

// Mode is the set of build-mode switches resolution consults. The zero
// value describes a plain external consumer build.
type Mode struct {
	// LibraryBuild marks compilation of the annotated library's own
	// source. The library must not warn against itself, so deprecation
	// and internal markers reduce to plain visibility.
	LibraryBuild bool
	// NoDeprecated marks consumer builds that exclude deprecated API
	// outright instead of merely warning about it.
	NoDeprecated bool
	// AppleNative marks the platform vendor's own toolchain, which has
	// its own precedence for deprecation markers.
	AppleNative bool
	// ExportBuild marks DLL builds where exported symbols need an
	// explicit export keyword. Off unless a target opts in.
	ExportBuild bool
}

// String renders the enabled switches joined by commas, or "default".
func (m Mode) String() string {
	var names []string
	if m.LibraryBuild {
		names = append(names, "library-build")
	}
	if m.NoDeprecated {
		names = append(names, "no-deprecated")
	}
	if m.AppleNative {
		names = append(names, "apple-native")
	}
	if m.ExportBuild {
		names = append(names, "export-build")
	}
	if len(names) == 0 {
		return "default"
	}
	return strings.Join(names, ",")
}
