// Package main implements the sigil CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sigil/internal/diag"
	"sigil/internal/expcache"
	"sigil/internal/genpipeline"
	"sigil/internal/manifest"
	"sigil/internal/observ"
	"sigil/internal/version"
	"sigil/internal/vet"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [target...]",
	Short: "Generate annotation prelude headers",
	Long: `Generate one annotation prelude header per configured target, using
sigil.toml as the target definition. With no arguments every target is
generated; otherwise only the named targets.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	genCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	genCmd.Flags().Bool("no-cache", false, "disable the persistent render cache")
	genCmd.Flags().String("path", ".", "directory to discover sigil.toml from")
	genCmd.Flags().String("out", "", "output directory (overrides [output].dir)")
	genCmd.Flags().Bool("library-source", false, "generate for the library's own build, for every target")
	genCmd.Flags().Bool("no-deprecated", false, "generate for no-deprecated consumer builds, for every target")
}

func runGen(cmd *cobra.Command, args []string) error {
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	path, err := cmd.Flags().GetString("path")
	if err != nil {
		return fmt.Errorf("failed to get path flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	librarySource, err := cmd.Flags().GetBool("library-source")
	if err != nil {
		return fmt.Errorf("failed to get library-source flag: %w", err)
	}
	noDeprecated, err := cmd.Flags().GetBool("no-deprecated")
	if err != nil {
		return fmt.Errorf("failed to get no-deprecated flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	progress, err := parseProgressMode(uiValue)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()

	stopLoad := timer.Phase("manifest")
	m, err := discoverManifest(path)
	if err != nil {
		return err
	}
	applyRunOverrides(m, outDir, librarySource, noDeprecated)
	stopLoad(m.Path)

	// Manifest problems surface before any header is written. Warnings
	// do not stop generation.
	stopVet := timer.Phase("vet")
	bag := diag.NewBag(maxDiagnostics)
	vet.Manifest(m, bag)
	stopVet("")
	if bag.HasErrors() {
		diag.WritePretty(os.Stderr, bag.Items())
		return fmt.Errorf("manifest has errors")
	}
	if bag.Len() > 0 && !quiet {
		diag.WritePretty(os.Stderr, bag.Items())
	}

	var cache *expcache.Cache
	if !noCache {
		// A broken cache directory downgrades to uncached rendering.
		cache, _ = expcache.Open("sigil")
	}

	timings := &genpipeline.Timings{}
	req := genpipeline.Request{
		Manifest: m,
		Targets:  args,
		Tool:     "sigil " + version.Plain(),
		Cache:    cache,
		Jobs:     jobs,
		Timings:  timings,
	}

	targetNames := args
	if len(targetNames) == 0 {
		targetNames = m.TargetNames()
	}

	stopGen := timer.Phase("generate")
	var result genpipeline.Result
	if progress.live() && len(targetNames) > 0 {
		result, err = runGenerateWithUI(cmd.Context(), "sigil gen", targetNames, &req)
	} else {
		result, err = genpipeline.Generate(cmd.Context(), &req)
	}
	stopGen(fmt.Sprintf("%d targets", len(targetNames)))
	if err != nil {
		if showTimings {
			printStageTimings(os.Stdout, timings)
		}
		return err
	}

	if !quiet {
		for _, target := range result.Targets {
			suffix := ""
			if target.Cached {
				suffix = " (cached)"
			}
			fmt.Fprintf(os.Stdout, "wrote %s%s\n", formatPathForOutput(m.Root, target.Path), suffix)
		}
	}
	if showTimings {
		printStageTimings(os.Stdout, timings)
		fmt.Fprint(os.Stdout, timer.Summary())
	}
	return nil
}

// applyRunOverrides folds the per-run gen flags into the loaded
// manifest, the same way Load folds the manifest-level [mode] defaults
// into targets: flags switch modes on, never off.
func applyRunOverrides(m *manifest.Manifest, outDir string, librarySource, noDeprecated bool) {
	if outDir != "" {
		m.Config.Output.Dir = outDir
	}
	for i := range m.Config.Targets {
		target := &m.Config.Targets[i]
		target.Mode.LibrarySource = target.Mode.LibrarySource || librarySource
		target.Mode.NoDeprecated = target.Mode.NoDeprecated || noDeprecated
	}
}
