package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sigil/internal/diag"
	"sigil/internal/directive"
	"sigil/internal/toolchain"
	"sigil/internal/vet"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <directive> [args...]",
	Short: "Resolve one directive against a toolchain",
	Long: `Resolve a directive to the attribute text it expands to for a given
toolchain and build mode. The toolchain comes from a sigil.toml target
(--target), from an explicit profile (--family, --major, --minor,
--ext), or from probing a compiler binary (--cc).

Use --list to print the directive catalog.`,
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("list", false, "list the directive catalog and exit")
	expandCmd.Flags().Bool("explain", false, "print the atom plan alongside the expansion")
	expandCmd.Flags().String("target", "", "resolve against this sigil.toml target")
	expandCmd.Flags().String("path", ".", "directory to discover sigil.toml from")
	expandCmd.Flags().String("cc", "", "probe this compiler binary for the profile")
	expandCmd.Flags().String("family", "", "toolchain family (clang|gcc|msvc|unknown)")
	expandCmd.Flags().Int("major", 0, "toolchain major version")
	expandCmd.Flags().Int("minor", 0, "toolchain minor version")
	expandCmd.Flags().StringSlice("ext", nil, "supported extension (repeatable)")
	expandCmd.Flags().Bool("nonnull", false, "grant the nonnull capability")
	expandCmd.Flags().Bool("library-source", false, "resolve as the library's own build")
	expandCmd.Flags().Bool("no-deprecated", false, "resolve as a no-deprecated consumer build")
	expandCmd.Flags().Bool("apple-native", false, "resolve for the Apple vendor toolchain")
	expandCmd.Flags().Bool("export-build", false, "resolve for a DLL export build")
}

func runExpand(cmd *cobra.Command, args []string) error {
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}
	if list {
		printDirectiveCatalog(cmd)
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("missing directive name (try --list)")
	}

	spec, ok := directive.LookupKind(args[0])
	if !ok {
		return fmt.Errorf("unknown directive %q (try --list)", args[0])
	}
	d, err := buildDirective(spec, args[1:])
	if err != nil {
		return err
	}

	caps, mode, err := expandContext(cmd)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	bag := diag.NewBag(maxDiagnostics)
	vet.Directive(d, bag)
	if bag.Len() > 0 {
		diag.WritePretty(os.Stderr, bag.Items())
	}
	if bag.HasErrors() {
		return fmt.Errorf("directive has errors")
	}

	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return fmt.Errorf("failed to get explain flag: %w", err)
	}

	expansion := directive.Resolve(d, caps, mode)
	if explain {
		printAtomPlan(cmd.OutOrStdout(), d, caps, mode)
	}
	if expansion.IsNoop() {
		fmt.Fprintln(cmd.OutOrStdout(), "(no expansion)")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), expansion.Text)
	return nil
}

func printAtomPlan(out io.Writer, d directive.Directive, caps toolchain.Caps, mode directive.Mode) {
	plan := directive.Plan(d.Kind, caps, mode)
	names := make([]string, len(plan))
	for i, atom := range plan {
		names[i] = atom.String()
	}
	fmt.Fprintf(out, "caps: %s\n", caps)
	fmt.Fprintf(out, "mode: %s\n", mode)
	if len(names) == 0 {
		fmt.Fprintln(out, "plan: (empty)")
		return
	}
	fmt.Fprintf(out, "plan: %s\n", strings.Join(names, " + "))
}

// expandContext assembles the capability flags and build mode the
// expansion runs against, from whichever profile source the flags name.
func expandContext(cmd *cobra.Command) (toolchain.Caps, directive.Mode, error) {
	targetName, err := cmd.Flags().GetString("target")
	if err != nil {
		return toolchain.Caps{}, directive.Mode{}, fmt.Errorf("failed to get target flag: %w", err)
	}
	ccFlag, err := cmd.Flags().GetString("cc")
	if err != nil {
		return toolchain.Caps{}, directive.Mode{}, fmt.Errorf("failed to get cc flag: %w", err)
	}
	if targetName != "" && ccFlag != "" {
		return toolchain.Caps{}, directive.Mode{}, fmt.Errorf("--target and --cc are mutually exclusive")
	}

	var (
		caps toolchain.Caps
		mode directive.Mode
	)
	switch {
	case targetName != "":
		path, pathErr := cmd.Flags().GetString("path")
		if pathErr != nil {
			return caps, mode, fmt.Errorf("failed to get path flag: %w", pathErr)
		}
		m, mErr := discoverManifest(path)
		if mErr != nil {
			return caps, mode, mErr
		}
		target, ok := m.Target(targetName)
		if !ok {
			return caps, mode, fmt.Errorf("unknown target %q (configured: %v)", targetName, m.TargetNames())
		}
		profile, pErr := target.Profile()
		if pErr != nil {
			return caps, mode, pErr
		}
		caps = profile.Capabilities()
		mode = target.BuildMode()
	case ccFlag != "":
		probe, dErr := toolchain.Detect(ccFlag)
		if dErr != nil {
			return caps, mode, dErr
		}
		caps = probe.Profile.Capabilities()
		mode.AppleNative = probe.Apple
	default:
		profile, pErr := profileFromFlags(cmd)
		if pErr != nil {
			return caps, mode, pErr
		}
		caps = profile.Capabilities()
	}

	// Mode switches layer on top of whatever the profile source set.
	for flag, field := range map[string]*bool{
		"library-source": &mode.LibraryBuild,
		"no-deprecated":  &mode.NoDeprecated,
		"apple-native":   &mode.AppleNative,
		"export-build":   &mode.ExportBuild,
	} {
		on, fErr := cmd.Flags().GetBool(flag)
		if fErr != nil {
			return caps, mode, fmt.Errorf("failed to get %s flag: %w", flag, fErr)
		}
		*field = *field || on
	}
	return caps, mode, nil
}

func profileFromFlags(cmd *cobra.Command) (toolchain.Profile, error) {
	familyName, err := cmd.Flags().GetString("family")
	if err != nil {
		return toolchain.Profile{}, fmt.Errorf("failed to get family flag: %w", err)
	}
	family := toolchain.FamilyUnknown
	if familyName != "" {
		parsed, ok := toolchain.ParseFamily(familyName)
		if !ok {
			return toolchain.Profile{}, fmt.Errorf("unknown family %q (expected clang, gcc, msvc, or unknown)", familyName)
		}
		family = parsed
	}
	major, err := cmd.Flags().GetInt("major")
	if err != nil {
		return toolchain.Profile{}, fmt.Errorf("failed to get major flag: %w", err)
	}
	minor, err := cmd.Flags().GetInt("minor")
	if err != nil {
		return toolchain.Profile{}, fmt.Errorf("failed to get minor flag: %w", err)
	}
	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return toolchain.Profile{}, fmt.Errorf("failed to get ext flag: %w", err)
	}
	nonNull, err := cmd.Flags().GetBool("nonnull")
	if err != nil {
		return toolchain.Profile{}, fmt.Errorf("failed to get nonnull flag: %w", err)
	}
	return toolchain.Profile{
		Family:     family,
		Major:      major,
		Minor:      minor,
		Extensions: exts,
		NonNull:    nonNull,
	}, nil
}

// buildDirective turns catalog name plus raw CLI arguments into a
// directive value, enforcing the kind's argument shape.
func buildDirective(spec directive.KindSpec, args []string) (directive.Directive, error) {
	switch spec.Args {
	case directive.ArgsNone:
		if len(args) != 0 {
			return directive.Directive{}, fmt.Errorf("%s takes no arguments", spec.Name)
		}
		return directive.Directive{Kind: spec.Kind}, nil
	case directive.ArgsMessage:
		if len(args) != 1 {
			return directive.Directive{}, fmt.Errorf("%s takes exactly one message argument", spec.Name)
		}
		return directive.Directive{Kind: spec.Kind, Message: args[0]}, nil
	case directive.ArgsIndexPair:
		if len(args) != 2 {
			return directive.Directive{}, fmt.Errorf("%s takes a format position and a first-vararg position", spec.Name)
		}
		formatIndex, err := parsePosition(spec.Name, args[0])
		if err != nil {
			return directive.Directive{}, err
		}
		firstVararg, err := parsePosition(spec.Name, args[1])
		if err != nil {
			return directive.Directive{}, err
		}
		return directive.FormatChecked(formatIndex, firstVararg), nil
	case directive.ArgsIndexList:
		if len(args) == 0 {
			return directive.Directive{}, fmt.Errorf("%s takes at least one argument position", spec.Name)
		}
		positions := make([]int, 0, len(args))
		for _, raw := range args {
			for _, piece := range strings.Split(raw, ",") {
				pos, err := parsePosition(spec.Name, piece)
				if err != nil {
					return directive.Directive{}, err
				}
				positions = append(positions, pos)
			}
		}
		return directive.NonNull(positions...), nil
	default:
		return directive.Directive{}, fmt.Errorf("unsupported argument shape for %s", spec.Name)
	}
}

func parsePosition(name, raw string) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an argument position", name, raw)
	}
	return pos, nil
}

func printDirectiveCatalog(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	for _, spec := range directive.KindSpecs() {
		usage := spec.Name
		if spec.Args != directive.ArgsNone {
			usage = fmt.Sprintf("%s <%s>", spec.Name, spec.Args)
		}
		fmt.Fprintf(out, "  %-34s %s\n", usage, spec.Brief)
	}
}
