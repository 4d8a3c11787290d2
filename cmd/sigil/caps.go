package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sigil/internal/toolchain"
)

var capsCmd = &cobra.Command{
	Use:   "caps [target]",
	Short: "Show the capability flags a toolchain grants",
	Long: `Show which annotation capabilities a toolchain grants. With a target
argument the profile comes from sigil.toml; with --cc the named compiler
binary is probed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCaps,
}

func init() {
	capsCmd.Flags().String("cc", "", "probe this compiler binary instead of reading sigil.toml")
	capsCmd.Flags().String("path", ".", "directory to discover sigil.toml from")
	capsCmd.Flags().String("family", "", "describe an explicit toolchain family (clang|gcc|msvc|unknown)")
	capsCmd.Flags().Int("major", 0, "toolchain major version")
	capsCmd.Flags().Int("minor", 0, "toolchain minor version")
	capsCmd.Flags().StringSlice("ext", nil, "supported extension (repeatable)")
	capsCmd.Flags().Bool("nonnull", false, "grant the nonnull capability")
}

func runCaps(cmd *cobra.Command, args []string) error {
	ccFlag, err := cmd.Flags().GetString("cc")
	if err != nil {
		return fmt.Errorf("failed to get cc flag: %w", err)
	}
	path, err := cmd.Flags().GetString("path")
	if err != nil {
		return fmt.Errorf("failed to get path flag: %w", err)
	}
	familyFlag, err := cmd.Flags().GetString("family")
	if err != nil {
		return fmt.Errorf("failed to get family flag: %w", err)
	}
	if ccFlag != "" && len(args) > 0 {
		return fmt.Errorf("--cc and a target argument are mutually exclusive")
	}
	if familyFlag != "" && (ccFlag != "" || len(args) > 0) {
		return fmt.Errorf("--family describes an explicit profile; drop --cc and target arguments")
	}

	var profile toolchain.Profile
	label := ""
	switch {
	case familyFlag != "":
		profile, err = profileFromFlags(cmd)
		if err != nil {
			return err
		}
		label = familyFlag
	case ccFlag != "":
		probe, err := toolchain.Detect(ccFlag)
		if err != nil {
			return err
		}
		profile = probe.Profile
		label = ccFlag
	default:
		m, err := discoverManifest(path)
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else if len(m.Config.Targets) == 1 {
			name = m.Config.Targets[0].Name
		} else {
			return fmt.Errorf("manifest has %d targets; name one (configured: %v)", len(m.Config.Targets), m.TargetNames())
		}
		target, ok := m.Target(name)
		if !ok {
			return fmt.Errorf("unknown target %q (configured: %v)", name, m.TargetNames())
		}
		profile, err = target.Profile()
		if err != nil {
			return err
		}
		label = name
	}

	renderCapsTable(cmd.OutOrStdout(), label, profile)
	return nil
}

var (
	capOnColor  = color.New(color.FgGreen)
	capOffColor = color.New(color.FgHiBlack)
)

func renderCapsTable(out io.Writer, label string, profile toolchain.Profile) {
	fmt.Fprintf(out, "%s: %s\n", label, profile)
	for _, flag := range profile.Capabilities().Flags() {
		mark := capOffColor.Sprint("off")
		if flag.On {
			mark = capOnColor.Sprint("on")
		}
		fmt.Fprintf(out, "  %-20s %s\n", flag.Name, mark)
	}
}
