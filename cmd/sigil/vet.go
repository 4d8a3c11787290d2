package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sigil/internal/diag"
	"sigil/internal/vet"
)

var vetCmd = &cobra.Command{
	Use:   "vet [path]",
	Short: "Check sigil.toml for mistakes",
	Long: `Check the project manifest for configuration mistakes: unknown
toolchain families, ignored version fields, contradictory build modes,
and the like. Exits non-zero when any error-severity finding exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVet,
}

func init() {
	vetCmd.Flags().String("format", "pretty", "output format (pretty|stable)")
	vetCmd.Flags().Bool("with-notes", false, "include finding notes in stable output")
}

func runVet(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	m, err := discoverManifest(path)
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	vet.Manifest(m, bag)

	switch strings.ToLower(format) {
	case "stable":
		fmt.Fprint(cmd.OutOrStdout(), diag.FormatStable(bag.Items(), withNotes))
	case "pretty":
		diag.WritePretty(cmd.OutOrStdout(), bag.Items())
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or stable)", format)
	}

	if bag.HasErrors() {
		return fmt.Errorf("manifest has errors")
	}
	if bag.Len() == 0 && !quiet {
		fmt.Fprintf(os.Stdout, "ok: %s\n", m.Path)
	}
	return nil
}
