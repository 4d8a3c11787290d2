package main

import (
	"testing"

	"sigil/internal/manifest"
)

func TestParseProgressMode(t *testing.T) {
	for _, tt := range []struct {
		in      string
		want    progressMode
		wantErr bool
	}{
		{in: "", want: progressAuto},
		{in: "auto", want: progressAuto},
		{in: "ON", want: progressLive},
		{in: " off ", want: progressPlain},
		{in: "fancy", wantErr: true},
	} {
		got, err := parseProgressMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseProgressMode(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseProgressMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseProgressMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyRunOverrides(t *testing.T) {
	newManifest := func() *manifest.Manifest {
		return &manifest.Manifest{
			Config: manifest.Config{
				Output: manifest.OutputConfig{Dir: "include"},
				Targets: []manifest.TargetConfig{
					{Name: "clang", Family: "clang"},
					{
						Name:   "gcc",
						Family: "gcc",
						Mode:   manifest.ModeConfig{NoDeprecated: true},
					},
				},
			},
		}
	}

	t.Run("no flags leave the manifest alone", func(t *testing.T) {
		m := newManifest()
		applyRunOverrides(m, "", false, false)
		if m.Config.Output.Dir != "include" {
			t.Errorf("output dir changed to %q", m.Config.Output.Dir)
		}
		if m.Config.Targets[0].Mode.LibrarySource || m.Config.Targets[0].Mode.NoDeprecated {
			t.Errorf("clang modes flipped: %+v", m.Config.Targets[0].Mode)
		}
	})

	t.Run("out overrides the output dir", func(t *testing.T) {
		m := newManifest()
		applyRunOverrides(m, "build/headers", false, false)
		if m.Config.Output.Dir != "build/headers" {
			t.Errorf("output dir = %q, want build/headers", m.Config.Output.Dir)
		}
	})

	t.Run("mode flags fold into every target", func(t *testing.T) {
		m := newManifest()
		applyRunOverrides(m, "", true, true)
		for _, target := range m.Config.Targets {
			if !target.Mode.LibrarySource || !target.Mode.NoDeprecated {
				t.Errorf("target %s modes = %+v", target.Name, target.Mode)
			}
		}
	})

	t.Run("flags never switch a target mode off", func(t *testing.T) {
		m := newManifest()
		applyRunOverrides(m, "", false, false)
		if !m.Config.Targets[1].Mode.NoDeprecated {
			t.Errorf("gcc no_deprecated was cleared")
		}
	})
}
