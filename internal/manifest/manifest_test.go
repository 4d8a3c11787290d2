package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sigil/internal/directive"
	"sigil/internal/toolchain"
)

const sampleManifest = `[library]
name = "libcoffee"
prefix = "COFFEE"

[output]
dir = "gen/include"

[[target]]
name = "linux-gcc"
family = "gcc"
major = 11
minor = 4

[[target]]
name = "macos-clang"
family = "clang"
extensions = ["attribute_deprecated_with_message", "attribute_unavailable_with_message"]

[target.capabilities]
nonnull = true

[target.mode]
apple_native = true
no_deprecated = true

[[target]]
name = "windows-msvc"
family = "msvc"

[target.mode]
export_build = true
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, sampleManifest)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Config.Library.Name != "libcoffee" {
		t.Errorf("library name = %q, want %q", m.Config.Library.Name, "libcoffee")
	}
	if m.Config.Library.Prefix != "COFFEE" {
		t.Errorf("library prefix = %q, want %q", m.Config.Library.Prefix, "COFFEE")
	}
	if got := m.TargetNames(); len(got) != 3 || got[0] != "linux-gcc" || got[1] != "macos-clang" || got[2] != "windows-msvc" {
		t.Errorf("TargetNames() = %v", got)
	}
	if m.Root != filepath.Dir(path) {
		t.Errorf("Root = %q, want %q", m.Root, filepath.Dir(path))
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing library section",
			content: "[[target]]\nname = \"a\"\nfamily = \"gcc\"\n",
			wantErr: "missing [library]",
		},
		{
			name:    "missing library name",
			content: "[library]\nprefix = \"X\"\n\n[[target]]\nname = \"a\"\nfamily = \"gcc\"\n",
			wantErr: "missing [library].name",
		},
		{
			name:    "empty library name",
			content: "[library]\nname = \"  \"\n\n[[target]]\nname = \"a\"\nfamily = \"gcc\"\n",
			wantErr: "missing [library].name",
		},
		{
			name:    "no targets",
			content: "[library]\nname = \"libcoffee\"\n",
			wantErr: "missing [[target]]",
		},
		{
			name:    "target without name",
			content: "[library]\nname = \"libcoffee\"\n\n[[target]]\nfamily = \"gcc\"\n",
			wantErr: "missing name",
		},
		{
			name:    "target without family",
			content: "[library]\nname = \"libcoffee\"\n\n[[target]]\nname = \"a\"\n",
			wantErr: "missing family",
		},
		{
			name:    "bad toml",
			content: "[library\n",
			wantErr: "failed to parse TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestTargetConfig_Profile(t *testing.T) {
	path := writeManifest(t, sampleManifest)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	gcc, ok := m.Target("linux-gcc")
	if !ok {
		t.Fatalf("target linux-gcc not found")
	}
	profile, err := gcc.Profile()
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if profile.Family != toolchain.FamilyGCC || profile.Major != 11 || profile.Minor != 4 {
		t.Errorf("gcc profile = %+v", profile)
	}

	clang, _ := m.Target("macos-clang")
	profile, err = clang.Profile()
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if !profile.HasExtension(toolchain.ExtUnavailableMessage) {
		t.Errorf("clang profile missing extension: %+v", profile)
	}
	if !profile.NonNull {
		t.Errorf("clang profile should carry the nonnull opt-in")
	}
	if mode := clang.BuildMode(); !mode.AppleNative || !mode.NoDeprecated || mode.ExportBuild {
		t.Errorf("clang mode = %+v", mode)
	}

	msvc, _ := m.Target("windows-msvc")
	if mode := msvc.BuildMode(); !mode.ExportBuild {
		t.Errorf("msvc mode = %+v", mode)
	}
}

func TestLoad_GlobalDefaults(t *testing.T) {
	content := `[library]
name = "libcoffee"
prefix = "COFFEE"
guard = "COFFEE_MARKS_H"

[output]
dir = "include"
macros = ["PUBLIC", "DEPRECATED"]

[capabilities]
nonnull = true

[mode]
no_deprecated = true

[[target]]
name = "plain"
family = "gcc"
major = 11

[[target]]
name = "source"
family = "gcc"
major = 11

[target.mode]
library_source = true
`
	m, err := Load(writeManifest(t, content))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Config.Library.Guard != "COFFEE_MARKS_H" {
		t.Errorf("guard = %q", m.Config.Library.Guard)
	}
	if got := m.Config.Output.Macros; len(got) != 2 || got[0] != "PUBLIC" || got[1] != "DEPRECATED" {
		t.Errorf("macros = %v", got)
	}

	plain, _ := m.Target("plain")
	profile, err := plain.Profile()
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if !profile.NonNull {
		t.Errorf("global [capabilities].nonnull should reach every target")
	}
	if mode := plain.BuildMode(); !mode.NoDeprecated || mode.LibraryBuild {
		t.Errorf("plain mode = %+v", mode)
	}

	source, _ := m.Target("source")
	if mode := source.BuildMode(); !mode.NoDeprecated || !mode.LibraryBuild {
		t.Errorf("source mode = %+v, want global no_deprecated plus its own library_source", mode)
	}
}

func TestTargetConfig_Profile_BadFamily(t *testing.T) {
	target := TargetConfig{Name: "weird", Family: "tcc"}
	if _, err := target.Profile(); err == nil {
		t.Errorf("Profile() should reject unknown family")
	}
}

func TestManifest_HeaderPath(t *testing.T) {
	path := writeManifest(t, sampleManifest)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := filepath.Join(m.Root, "gen", "include", "linux-gcc.h")
	if got := m.HeaderPath("linux-gcc"); got != want {
		t.Errorf("HeaderPath() = %q, want %q", got, want)
	}
}

func TestManifest_DefaultOutputDir(t *testing.T) {
	path := writeManifest(t, "[library]\nname = \"libcoffee\"\n\n[[target]]\nname = \"a\"\nfamily = \"gcc\"\nmajor = 11\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := filepath.Join(m.Root, DefaultOutputDir)
	if got := m.OutputDir(); got != want {
		t.Errorf("OutputDir() = %q, want %q", got, want)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifestPath := filepath.Join(root, FileName)
	if err := os.WriteFile(manifestPath, []byte(sampleManifest), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if !ok || got != manifestPath {
		t.Errorf("Find() = (%q, %v), want (%q, true)", got, ok, manifestPath)
	}
}

func TestFind_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if ok {
		t.Errorf("Find() found a manifest in an empty tree")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(sampleManifest), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, ok, err := Discover(root)
	if err != nil || !ok {
		t.Fatalf("Discover() = (%v, %v)", ok, err)
	}
	if m.Config.Library.Name != "libcoffee" {
		t.Errorf("Discover() library = %q", m.Config.Library.Name)
	}
	var mode directive.Mode
	if target, _ := m.Target("linux-gcc"); target.BuildMode() != mode {
		t.Errorf("default mode should be zero, got %+v", target.BuildMode())
	}
}
