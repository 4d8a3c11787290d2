package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sigil/internal/expcache"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove generated headers and the render cache",
	Long: `Remove the output directory holding generated prelude headers. With
--cache the persistent render cache is dropped as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache", false, "also drop the persistent render cache")
}

func runClean(cmd *cobra.Command, args []string) error {
	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	baseDir := "."
	if len(args) > 0 && args[0] != "" {
		baseDir = args[0]
	}

	m, err := discoverManifest(baseDir)
	if err != nil {
		return err
	}
	outputDir := m.OutputDir()
	info, statErr := os.Stat(outputDir)
	switch {
	case statErr == nil && !info.IsDir():
		return fmt.Errorf("%q is not a directory", outputDir)
	case statErr == nil:
		if err := os.RemoveAll(outputDir); err != nil {
			return fmt.Errorf("failed to remove %q: %w", outputDir, err)
		}
		fmt.Fprintf(os.Stdout, "removed %s\n", formatPathForOutput(m.Root, outputDir))
	case errors.Is(statErr, os.ErrNotExist):
		fmt.Fprintln(os.Stdout, "output directory not found")
	default:
		return fmt.Errorf("failed to stat %q: %w", outputDir, statErr)
	}

	if dropCache {
		cache, openErr := expcache.Open("sigil")
		if openErr != nil {
			return openErr
		}
		if err := cache.DropAll(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "dropped render cache")
	}
	return nil
}
