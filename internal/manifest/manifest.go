package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"sigil/internal/directive"
	"sigil/internal/toolchain"
)

// FileName is the manifest file sigil looks for.
const FileName = "sigil.toml"

// DefaultOutputDir is where generated headers land when [output].dir is
// not set.
const DefaultOutputDir = "include"

// Manifest is a loaded sigil.toml plus its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sigil.toml structure. The top-level [capabilities]
// and [mode] tables are defaults every target inherits; per-target
// tables add to them.
type Config struct {
	Library      LibraryConfig      `toml:"library"`
	Output       OutputConfig       `toml:"output"`
	Capabilities CapabilitiesConfig `toml:"capabilities"`
	Mode         ModeConfig         `toml:"mode"`
	Targets      []TargetConfig     `toml:"target"`
}

// LibraryConfig identifies the annotated library.
type LibraryConfig struct {
	Name   string `toml:"name"`
	Prefix string `toml:"prefix"`
	Guard  string `toml:"guard"`
}

// OutputConfig controls where generated headers are written. Macros
// optionally restricts generation to a subset of the macro set.
type OutputConfig struct {
	Dir    string   `toml:"dir"`
	Macros []string `toml:"macros"`
}

// TargetConfig describes one toolchain to generate a prelude for.
type TargetConfig struct {
	Name         string             `toml:"name"`
	Family       string             `toml:"family"`
	Major        int64              `toml:"major"`
	Minor        int64              `toml:"minor"`
	Extensions   []string           `toml:"extensions"`
	Capabilities CapabilitiesConfig `toml:"capabilities"`
	Mode         ModeConfig         `toml:"mode"`
}

// CapabilitiesConfig holds per-target capability opt-ins that detection
// never grants on its own.
type CapabilitiesConfig struct {
	NonNull bool `toml:"nonnull"`
}

// ModeConfig holds the build-mode switches for one target.
type ModeConfig struct {
	LibrarySource bool `toml:"library_source"`
	NoDeprecated  bool `toml:"no_deprecated"`
	AppleNative   bool `toml:"apple_native"`
	ExportBuild   bool `toml:"export_build"`
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("library") {
		return nil, fmt.Errorf("%s: missing [library]", path)
	}
	if !meta.IsDefined("library", "name") || strings.TrimSpace(cfg.Library.Name) == "" {
		return nil, fmt.Errorf("%s: missing [library].name", path)
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("%s: missing [[target]] (at least one target is required)", path)
	}
	for i, target := range cfg.Targets {
		if strings.TrimSpace(target.Name) == "" {
			return nil, fmt.Errorf("%s: [[target]] #%d: missing name", path, i+1)
		}
		if strings.TrimSpace(target.Family) == "" {
			return nil, fmt.Errorf("%s: target %q: missing family", path, target.Name)
		}
	}
	// Fold the manifest-level defaults into each target so the rest of
	// the toolchain only ever sees effective per-target switches.
	for i := range cfg.Targets {
		cfg.Targets[i].Capabilities.NonNull = cfg.Targets[i].Capabilities.NonNull || cfg.Capabilities.NonNull
		cfg.Targets[i].Mode.LibrarySource = cfg.Targets[i].Mode.LibrarySource || cfg.Mode.LibrarySource
		cfg.Targets[i].Mode.NoDeprecated = cfg.Targets[i].Mode.NoDeprecated || cfg.Mode.NoDeprecated
		cfg.Targets[i].Mode.AppleNative = cfg.Targets[i].Mode.AppleNative || cfg.Mode.AppleNative
		cfg.Targets[i].Mode.ExportBuild = cfg.Targets[i].Mode.ExportBuild || cfg.Mode.ExportBuild
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	return &Manifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

// OutputDir returns the header output directory, absolute under Root.
func (m *Manifest) OutputDir() string {
	dir := m.Config.Output.Dir
	if dir == "" {
		dir = DefaultOutputDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

// HeaderPath returns where the prelude for the named target is written.
func (m *Manifest) HeaderPath(target string) string {
	return filepath.Join(m.OutputDir(), target+".h")
}

// Target returns the target with the given name.
func (m *Manifest) Target(name string) (TargetConfig, bool) {
	for _, t := range m.Config.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return TargetConfig{}, false
}

// TargetNames returns the configured target names in manifest order.
func (m *Manifest) TargetNames() []string {
	names := make([]string, len(m.Config.Targets))
	for i, t := range m.Config.Targets {
		names[i] = t.Name
	}
	return names
}

// Profile assembles the toolchain profile for the target.
func (t TargetConfig) Profile() (toolchain.Profile, error) {
	family, ok := toolchain.ParseFamily(t.Family)
	if !ok {
		return toolchain.Profile{}, fmt.Errorf("target %q: unknown family %q", t.Name, t.Family)
	}
	major, err := safecast.Conv[int](t.Major)
	if err != nil {
		return toolchain.Profile{}, fmt.Errorf("target %q: major version out of range: %w", t.Name, err)
	}
	minor, err := safecast.Conv[int](t.Minor)
	if err != nil {
		return toolchain.Profile{}, fmt.Errorf("target %q: minor version out of range: %w", t.Name, err)
	}
	return toolchain.Profile{
		Family:     family,
		Major:      major,
		Minor:      minor,
		Extensions: append([]string(nil), t.Extensions...),
		NonNull:    t.Capabilities.NonNull,
	}, nil
}

// BuildMode assembles the build-mode switches for the target.
func (t TargetConfig) BuildMode() directive.Mode {
	return directive.Mode{
		LibraryBuild: t.Mode.LibrarySource,
		NoDeprecated: t.Mode.NoDeprecated,
		AppleNative:  t.Mode.AppleNative,
		ExportBuild:  t.Mode.ExportBuild,
	}
}
