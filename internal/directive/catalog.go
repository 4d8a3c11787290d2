package directive

import (
	"slices"
	"strings"
)

// ArgShape describes the argument list a directive kind accepts.
type ArgShape uint8

const (
	// ArgsNone takes no arguments.
	ArgsNone ArgShape = iota
	// ArgsMessage takes one replacement-message string.
	ArgsMessage
	// ArgsIndexPair takes the format-string and first-vararg positions.
	ArgsIndexPair
	// ArgsIndexList takes one or more argument positions.
	ArgsIndexList
)

// String returns a human-readable shape label for usage listings.
func (s ArgShape) String() string {
	switch s {
	case ArgsMessage:
		return "message"
	case ArgsIndexPair:
		return "format-pos,vararg-pos"
	case ArgsIndexList:
		return "pos,..."
	default:
		return "none"
	}
}

// KindSpec describes one directive kind: its catalog name, argument
// shape, and what the annotation means.
type KindSpec struct {
	Name  string
	Kind  Kind
	Args  ArgShape
	Brief string
}

var kindRegistry = map[string]KindSpec{
	"deprecated":     {Name: "deprecated", Kind: KindDeprecated, Args: ArgsNone, Brief: "deprecated, no replacement"},
	"deprecated-msg": {Name: "deprecated-msg", Kind: KindDeprecatedMessage, Args: ArgsMessage, Brief: "deprecated with a replacement note"},
	"internal":       {Name: "internal", Kind: KindInternal, Args: ArgsNone, Brief: "internal API, hidden from consumers"},
	"internal-msg":   {Name: "internal-msg", Kind: KindInternalMessage, Args: ArgsMessage, Brief: "internal API kept visible, with a replacement note"},
	"format":         {Name: "format", Kind: KindFormat, Args: ArgsIndexPair, Brief: "printf-style format checking"},
	"nonnull":        {Name: "nonnull", Kind: KindNonNull, Args: ArgsIndexList, Brief: "arguments that must not be null"},
	"noreturn":       {Name: "noreturn", Kind: KindNoReturn, Args: ArgsNone, Brief: "function never returns"},
	"private":        {Name: "private", Kind: KindPrivate, Args: ArgsNone, Brief: "exported but unsupported API"},
	"public":         {Name: "public", Kind: KindPublic, Args: ArgsNone, Brief: "supported public API"},
}

// LookupKind returns the spec for the given catalog name
// (case-insensitive).
func LookupKind(name string) (KindSpec, bool) {
	if name == "" {
		return KindSpec{}, false
	}
	spec, ok := kindRegistry[strings.ToLower(name)]
	return spec, ok
}

// KindSpecs returns all registered kinds sorted by name.
func KindSpecs() []KindSpec {
	names := make([]string, 0, len(kindRegistry))
	for name := range kindRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	specs := make([]KindSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, kindRegistry[name])
	}
	return specs
}
