package version

import (
	"regexp"

	"github.com/fatih/color"
)

// Version information for the sigil CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Plain returns Version with terminal color sequences stripped, for
// embedding in generated files and cache keys.
func Plain() string {
	return ansiEscape.ReplaceAllString(Version, "")
}
