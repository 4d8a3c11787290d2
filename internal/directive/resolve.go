package directive

import (
	"strings"

	"sigil/internal/toolchain"
)

// Expansion is the resolved output for one directive use site.
type Expansion struct {
	// Atoms is the concrete atom sequence after public-marker splicing.
	Atoms []Atom
	// Text is the attribute text. Empty text is a no-op expansion.
	Text string
}

// IsNoop reports whether the expansion produces no attribute text.
func (e Expansion) IsNoop() bool {
	return e.Text == ""
}

// Resolve expands one directive against the capability flags and build
// mode. Identical inputs always yield identical expansions.
func Resolve(d Directive, caps toolchain.Caps, mode Mode) Expansion {
	atoms := Splice(Plan(d.Kind, caps, mode), caps, mode)
	args := d.renderArgs()
	var parts []string
	for _, atom := range atoms {
		if text := atom.Render(args); text != "" {
			parts = append(parts, text)
		}
	}
	return Expansion{Atoms: atoms, Text: strings.Join(parts, " ")}
}

// Splice replaces every AtomPublic in plan with the public visibility
// plan for the same flags and mode, so the caller sees only renderable
// atoms. The input slice is not modified.
func Splice(plan []Atom, caps toolchain.Caps, mode Mode) []Atom {
	out := make([]Atom, 0, len(plan))
	for _, atom := range plan {
		if atom == AtomPublic {
			out = append(out, planVisibilityDefault(caps, mode)...)
			continue
		}
		out = append(out, atom)
	}
	return out
}
