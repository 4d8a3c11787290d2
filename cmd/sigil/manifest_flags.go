package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigil/internal/manifest"
)

const noSigilTomlMessage = "no sigil.toml found in this directory or any parent; run `sigil init` first"

// discoverManifest loads the manifest governing base, walking up parent
// directories. base may be a file path; its directory is used then.
func discoverManifest(base string) (*manifest.Manifest, error) {
	if base == "" {
		base = "."
	}
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", base, err)
	}
	if !info.IsDir() {
		base = filepath.Dir(base)
	}
	m, found, err := manifest.Discover(base)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(noSigilTomlMessage)
	}
	return m, nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if len(rel) >= 2 && rel[:2] == ".." {
		return path
	}
	return filepath.ToSlash(rel)
}
