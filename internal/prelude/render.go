package prelude

import (
	"fmt"
	"strings"

	"sigil/internal/directive"
	"sigil/internal/toolchain"
)

// Header describes one prelude to render: the library it belongs to and
// the toolchain/mode pair its macros are resolved against.
type Header struct {
	// Library is the human-readable library name used in the banner.
	Library string
	// Prefix is the macro prefix. Derived from Library when empty.
	Prefix string
	// Guard is the include guard macro. Derived from Prefix when empty.
	Guard string
	// Tool names the generator in the banner, e.g. "sigil 0.1.0".
	Tool string
	// Macros restricts the header to the named macros. Empty means the
	// full set. The public marker is always emitted because other macro
	// bodies reference it by name.
	Macros []string

	Profile toolchain.Profile
	Mode    directive.Mode
}

// prefix returns the effective macro prefix.
func (h Header) prefix() string {
	if h.Prefix != "" {
		return h.Prefix
	}
	return MacroPrefix(h.Library)
}

// The macro suffixes a prelude can define, in emission order.
const (
	MacroInternal      = "INTERNAL"
	MacroPrivate       = "PRIVATE"
	MacroPublic        = "PUBLIC"
	MacroDeprecated    = "DEPRECATED"
	MacroDeprecatedMsg = "DEPRECATED_MSG"
	MacroFormat        = "FORMAT"
	MacroInternalMsg   = "INTERNAL_MSG"
	MacroNonNull       = "NONNULL"
	MacroNoReturn      = "NORETURN"
)

var macroNames = []string{
	MacroInternal, MacroPrivate, MacroPublic,
	MacroDeprecated, MacroDeprecatedMsg,
	MacroFormat, MacroInternalMsg, MacroNonNull, MacroNoReturn,
}

// MacroNames returns every macro suffix a prelude can define, in
// emission order.
func MacroNames() []string {
	return append([]string(nil), macroNames...)
}

// KnownMacro reports whether name is a defined macro suffix.
func KnownMacro(name string) bool {
	for _, known := range macroNames {
		if strings.EqualFold(name, known) {
			return true
		}
	}
	return false
}

// Render produces the complete prelude header text. Output is a pure
// function of the header value; rendering twice yields identical bytes.
func Render(h Header) string {
	e := &emitter{
		prefix:    h.prefix(),
		guardName: h.Guard,
		caps:      h.Profile.Capabilities(),
		mode:      h.Mode,
		subset:    macroSubset(h.Macros),
	}
	e.emitBanner(h)
	e.emitGuardOpen()
	e.emitAttributeErasure(h.Profile.Family)
	e.emitVisibility()
	e.emitDeprecation()
	e.emitFormat()
	e.emitInternalMessage()
	e.emitNonNull()
	e.emitNoReturn()
	e.emitGuardClose()
	return e.buf.String()
}

// macroSubset normalizes a macro restriction list to upper case. A nil
// return means everything is emitted.
func macroSubset(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	subset := make(map[string]bool, len(names)+1)
	for _, name := range names {
		subset[strings.ToUpper(name)] = true
	}
	// Deprecation and internal bodies reference the public marker.
	subset[MacroPublic] = true
	return subset
}

type emitter struct {
	prefix    string
	guardName string
	caps      toolchain.Caps
	mode      directive.Mode
	subset    map[string]bool
	buf       strings.Builder
}

// wants reports whether the named macro survives the subset filter.
func (e *emitter) wants(name string) bool {
	return e.subset == nil || e.subset[name]
}

func (e *emitter) macroName(suffix string) string {
	return e.prefix + "_" + suffix
}

func (e *emitter) guard() string {
	if e.guardName != "" {
		return e.guardName
	}
	return GuardMacro(e.prefix)
}

func (e *emitter) emitBanner(h Header) {
	library := h.Library
	if library == "" {
		library = strings.ToLower(e.prefix)
	}
	tool := h.Tool
	if tool == "" {
		tool = "sigil"
	}
	fmt.Fprintf(&e.buf, "//\n// Annotation prelude for %s.\n//\n", library)
	fmt.Fprintf(&e.buf, "// Generated by %s for %s", tool, h.Profile)
	if mode := h.Mode.String(); mode != "default" {
		fmt.Fprintf(&e.buf, " (%s)", mode)
	}
	e.buf.WriteString(". Do not edit.\n//\n\n")
}

func (e *emitter) emitGuardOpen() {
	fmt.Fprintf(&e.buf, "#ifndef %s\n#  define %s\n\n", e.guard(), e.guard())
}

// emitAttributeErasure neutralizes GNU attribute syntax on compilers
// that reject it, so hand-written attributes in neighboring headers do
// not break the build.
func (e *emitter) emitAttributeErasure(family toolchain.Family) {
	if family != toolchain.FamilyMSVC {
		return
	}
	e.buf.WriteString("#  ifndef __attribute__\n#    define __attribute__(...)\n#  endif\n\n")
}

// emitVisibility always defines the public marker; the other macro
// bodies reference it by name.
func (e *emitter) emitVisibility() {
	if e.wants(MacroInternal) {
		e.define(e.macroName(MacroInternal), e.body(directive.KindInternal, directive.Args{}))
	}
	if e.wants(MacroPrivate) {
		e.define(e.macroName(MacroPrivate), e.body(directive.KindPrivate, directive.Args{}))
	}
	e.define(e.macroName(MacroPublic), e.body(directive.KindPublic, directive.Args{}))
	e.buf.WriteByte('\n')
}

func (e *emitter) emitDeprecation() {
	emitted := false
	if e.wants(MacroDeprecated) {
		e.define(e.macroName(MacroDeprecated), e.body(directive.KindDeprecated, directive.Args{}))
		emitted = true
	}
	if e.wants(MacroDeprecatedMsg) {
		e.define(e.macroName(MacroDeprecatedMsg+"(m)"), e.body(directive.KindDeprecatedMessage, directive.Args{Message: "m"}))
		emitted = true
	}
	if emitted {
		e.buf.WriteByte('\n')
	}
}

func (e *emitter) emitFormat() {
	if !e.wants(MacroFormat) {
		return
	}
	e.define(e.macroName(MacroFormat+"(a,b)"), e.body(directive.KindFormat, directive.Args{FormatIndex: "a", FirstVararg: "b"}))
	e.buf.WriteByte('\n')
}

func (e *emitter) emitInternalMessage() {
	if !e.wants(MacroInternalMsg) {
		return
	}
	e.define(e.macroName(MacroInternalMsg+"(m)"), e.body(directive.KindInternalMessage, directive.Args{Message: "m"}))
	e.buf.WriteByte('\n')
}

func (e *emitter) emitNonNull() {
	if !e.wants(MacroNonNull) {
		return
	}
	e.define(e.macroName(MacroNonNull+"(...)"), e.body(directive.KindNonNull, directive.Args{Positions: "__VA_ARGS__"}))
	e.buf.WriteByte('\n')
}

func (e *emitter) emitNoReturn() {
	if !e.wants(MacroNoReturn) {
		return
	}
	e.define(e.macroName(MacroNoReturn), e.body(directive.KindNoReturn, directive.Args{}))
	e.buf.WriteByte('\n')
}

func (e *emitter) emitGuardClose() {
	fmt.Fprintf(&e.buf, "#endif // !%s\n", e.guard())
}

func (e *emitter) define(name, body string) {
	if body == "" {
		fmt.Fprintf(&e.buf, "#  define %s\n", name)
		return
	}
	fmt.Fprintf(&e.buf, "#  define %s %s\n", name, body)
}

// body renders the macro body for a directive kind. The public marker
// is referenced by macro name instead of being spliced, so deprecation
// macros compose with the visibility macros the same way consumers do.
func (e *emitter) body(kind directive.Kind, args directive.Args) string {
	var parts []string
	for _, atom := range directive.Plan(kind, e.caps, e.mode) {
		if atom == directive.AtomPublic {
			parts = append(parts, e.macroName("PUBLIC"))
			continue
		}
		if text := atom.Render(args); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
