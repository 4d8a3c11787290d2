package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Manifest rules
	ManInfo             Code = 1000
	ManDuplicateTarget  Code = 1001
	ManUnknownFamily    Code = 1002
	ManVersionIgnored   Code = 1003
	ManUnknownExtension Code = 1004
	ManExtensionIgnored Code = 1005
	ManDeadExportSwitch Code = 1006
	ManPrefixFallback   Code = 1007
	ManSelfDeprecation  Code = 1008
	ManReservedPrefix   Code = 1009
	ManUnknownMacro     Code = 1010
	ManAppleNonClang    Code = 1011
	ManBadGuard         Code = 1012

	// Directive-argument rules
	DirInfo              Code = 2000
	DirEmptyMessage      Code = 2001
	DirBadIndex          Code = 2002
	DirVarargOrder       Code = 2003
	DirDuplicatePosition Code = 2004
	DirNoPositions       Code = 2005
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	ManInfo:             "Manifest information",
	ManDuplicateTarget:  "Duplicate target name",
	ManUnknownFamily:    "Unknown compiler family",
	ManVersionIgnored:   "Version fields are ignored for this family",
	ManUnknownExtension: "Unknown extension token",
	ManExtensionIgnored: "Extension tokens are ignored for this family",
	ManDeadExportSwitch: "export_build has no effect on this target",
	ManPrefixFallback:   "Library name yields no usable macro prefix",
	ManSelfDeprecation:  "no_deprecated has no effect while library_source is set",
	ManReservedPrefix:   "Macro prefix is invalid or reserved",
	ManUnknownMacro:     "Unknown macro name in output restriction",
	ManAppleNonClang:    "apple_native on a non-clang target",
	ManBadGuard:         "Include guard is not a macro identifier",

	DirInfo:              "Directive information",
	DirEmptyMessage:      "Empty replacement message",
	DirBadIndex:          "Argument position must be 1 or greater",
	DirVarargOrder:       "First vararg position must follow the format position",
	DirDuplicatePosition: "Duplicate argument position",
	DirNoPositions:       "No argument positions given",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("MAN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DIR%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
