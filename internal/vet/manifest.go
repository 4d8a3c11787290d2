// Package vet checks manifests and directive arguments for mistakes
// that resolution itself tolerates silently.
package vet

import (
	"fmt"
	"strings"

	"sigil/internal/diag"
	"sigil/internal/manifest"
	"sigil/internal/prelude"
	"sigil/internal/toolchain"
)

// Manifest runs every manifest rule and collects findings into bag.
// Rules never mutate the manifest; an error-level finding means gen
// would produce a header the author did not intend.
func Manifest(m *manifest.Manifest, bag *diag.Bag) {
	checkPrefix(m, bag)
	checkGuard(m, bag)
	checkMacros(m, bag)
	seen := make(map[string]bool, len(m.Config.Targets))
	for _, target := range m.Config.Targets {
		subject := "target " + target.Name
		if seen[target.Name] {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.ManDuplicateTarget,
				Subject:  subject,
				Message:  fmt.Sprintf("target %q is declared more than once", target.Name),
			})
			continue
		}
		seen[target.Name] = true
		checkTarget(target, subject, bag)
	}
}

func checkPrefix(m *manifest.Manifest, bag *diag.Bag) {
	subject := "library " + m.Config.Library.Name
	prefix := m.Config.Library.Prefix
	if prefix == "" {
		if prelude.MacroPrefix(m.Config.Library.Name) == "LIB" {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.ManPrefixFallback,
				Subject:  subject,
				Message:  fmt.Sprintf("name %q yields no usable macro prefix; set [library].prefix", m.Config.Library.Name),
			})
		}
		return
	}
	switch {
	case strings.HasPrefix(prefix, "_"):
		// Leading-underscore identifiers belong to the C implementation.
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ManReservedPrefix,
			Subject:  subject,
			Message:  fmt.Sprintf("prefix %q starts with an underscore, which C reserves for the implementation", prefix),
		})
	case !macroIdentifier(prefix):
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ManReservedPrefix,
			Subject:  subject,
			Message:  fmt.Sprintf("prefix %q must match [A-Z][A-Z0-9_]*", prefix),
		})
	}
}

func checkGuard(m *manifest.Manifest, bag *diag.Bag) {
	guard := m.Config.Library.Guard
	if guard == "" {
		return
	}
	if strings.HasPrefix(guard, "_") || !macroIdentifier(guard) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.ManBadGuard,
			Subject:  "library " + m.Config.Library.Name,
			Message:  fmt.Sprintf("guard %q is not an unreserved macro identifier", guard),
		})
	}
}

func checkMacros(m *manifest.Manifest, bag *diag.Bag) {
	for _, name := range m.Config.Output.Macros {
		if !prelude.KnownMacro(name) {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.ManUnknownMacro,
				Subject:  "output macros",
				Message:  fmt.Sprintf("%q is not a generated macro (known: %s)", name, strings.Join(prelude.MacroNames(), ", ")),
			})
		}
	}
}

// macroIdentifier reports whether s is an all-caps C macro identifier
// starting with a letter.
func macroIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r == '_' && i > 0:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func checkTarget(target manifest.TargetConfig, subject string, bag *diag.Bag) {
	family, ok := toolchain.ParseFamily(target.Family)
	if !ok {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ManUnknownFamily,
			Subject:  subject,
			Message:  fmt.Sprintf("family %q is not one of clang, gcc, msvc, unknown", target.Family),
		})
		return
	}

	// Only GCC derivation reads version numbers.
	if family != toolchain.FamilyGCC && (target.Major != 0 || target.Minor != 0) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.ManVersionIgnored,
			Subject:  subject,
			Message:  fmt.Sprintf("version %d.%d has no effect on family %q", target.Major, target.Minor, family),
		})
	}

	if family != toolchain.FamilyClang && len(target.Extensions) > 0 {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.ManExtensionIgnored,
			Subject:  subject,
			Message:  fmt.Sprintf("extension tokens have no effect on family %q", family),
		})
	}
	if family != toolchain.FamilyClang && target.Mode.AppleNative {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.ManAppleNonClang,
			Subject:  subject,
			Message:  fmt.Sprintf("apple_native on family %q describes no real toolchain", family),
		})
	}
	if family == toolchain.FamilyClang {
		for _, ext := range target.Extensions {
			if !toolchain.KnownExtension(ext) {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevWarning,
					Code:     diag.ManUnknownExtension,
					Subject:  subject,
					Message:  fmt.Sprintf("extension %q is never consulted", ext),
				})
			}
		}
	}

	profile, err := target.Profile()
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ManUnknownFamily,
			Subject:  subject,
			Message:  err.Error(),
		})
		return
	}
	caps := profile.Capabilities()

	// The export keyword path is only reachable when attribute
	// visibility is unavailable.
	if target.Mode.ExportBuild && caps.Visibility {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.ManDeadExportSwitch,
			Subject:  subject,
			Message:  "export_build is unreachable: this toolchain resolves visibility through attributes",
		})
	}

	if target.Mode.LibrarySource && target.Mode.NoDeprecated {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.ManSelfDeprecation,
			Subject:  subject,
			Message:  "library_source already silences deprecation markers; no_deprecated adds nothing",
		})
	}
}
