package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sigil/internal/manifest"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new sigil project",
	Long: `Initialize a sigil project by creating a manifest (sigil.toml) with one
target per common toolchain. If [path|name] is omitted, initializes the
current directory. If a non-existing name is provided, a directory will
be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a sigil project at the specified target path (or
// the current working directory when no argument or "." is provided) by
// creating a sigil.toml manifest.
//
// It resolves the target path, creates the directory if it does not
// exist, derives a library name from the directory basename (falling
// back to "mylib" for invalid names), and refuses to initialize if
// sigil.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "mylib"
	}

	manifestPath := filepath.Join(target, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	content := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(content), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized sigil project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", manifest.FileName)
	return nil
}

// buildDefaultManifest returns a starter TOML manifest covering the
// common toolchains for the provided library name.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Sigil annotation manifest
[library]
name = "%s"

[output]
dir = "include"

[[target]]
name = "clang"
family = "clang"
extensions = ["attribute_deprecated_with_message", "attribute_unavailable_with_message"]

[[target]]
name = "gcc"
family = "gcc"
major = 12

[[target]]
name = "msvc"
family = "msvc"
`, name)
}
