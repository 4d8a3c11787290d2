package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sigil/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sigil",
	Short: "Sigil C annotation toolchain",
	Long:  `Sigil generates portable attribute annotation preludes for C library headers`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status
// code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(capsCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(vetCmd)
	rootCmd.AddCommand(cleanCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
