package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sigil/internal/toolchain"
)

var detectCmd = &cobra.Command{
	Use:   "detect [compiler]",
	Short: "Probe a C compiler and report its annotation profile",
	Long: `Probe a C compiler binary and report its family, version, and the
attribute extensions it supports. With no argument the compiler named by
$CC is probed, falling back to "cc".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

type detectPayload struct {
	Compiler   string   `json:"compiler"`
	Family     string   `json:"family"`
	Major      int      `json:"major"`
	Minor      int      `json:"minor"`
	Extensions []string `json:"extensions,omitempty"`
	Apple      bool     `json:"apple"`
	Banner     string   `json:"banner,omitempty"`
}

func init() {
	detectCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	cc := toolchain.DefaultCompiler()
	if len(args) == 1 {
		cc = args[0]
	}

	probe, err := toolchain.Detect(cc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return renderDetectJSON(out, cc, probe)
	}
	renderDetectPretty(out, cc, probe)
	return nil
}

func renderDetectPretty(out io.Writer, cc string, probe toolchain.Probe) {
	fmt.Fprintf(out, "compiler: %s\n", cc)
	fmt.Fprintf(out, "profile:  %s\n", probe.Profile)
	if probe.Apple {
		fmt.Fprintln(out, "vendor:   apple")
	}
	if len(probe.Profile.Extensions) > 0 {
		fmt.Fprintf(out, "extensions: %s\n", strings.Join(probe.Profile.Extensions, ", "))
	}
	if probe.Banner != "" {
		fmt.Fprintf(out, "banner:   %s\n", probe.Banner)
	}
}

func renderDetectJSON(out io.Writer, cc string, probe toolchain.Probe) error {
	payload := detectPayload{
		Compiler:   cc,
		Family:     probe.Profile.Family.String(),
		Major:      probe.Profile.Major,
		Minor:      probe.Profile.Minor,
		Extensions: probe.Profile.Extensions,
		Apple:      probe.Apple,
		Banner:     probe.Banner,
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
