package main

import (
	"testing"

	"sigil/internal/directive"
)

func TestBuildDirective(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		args    []string
		want    directive.Directive
		wantErr bool
	}{
		{name: "deprecated", kind: "deprecated", want: directive.Deprecated()},
		{name: "deprecated with args", kind: "deprecated", args: []string{"x"}, wantErr: true},
		{name: "message", kind: "deprecated-msg", args: []string{"use Foo() instead"}, want: directive.DeprecatedMessage("use Foo() instead")},
		{name: "message missing", kind: "internal-msg", wantErr: true},
		{name: "format pair", kind: "format", args: []string{"2", "3"}, want: directive.FormatChecked(2, 3)},
		{name: "format odd args", kind: "format", args: []string{"2"}, wantErr: true},
		{name: "format non-numeric", kind: "format", args: []string{"two", "3"}, wantErr: true},
		{name: "nonnull list", kind: "nonnull", args: []string{"1", "3"}, want: directive.NonNull(1, 3)},
		{name: "nonnull comma form", kind: "nonnull", args: []string{"1,3"}, want: directive.NonNull(1, 3)},
		{name: "nonnull empty", kind: "nonnull", wantErr: true},
		{name: "public", kind: "public", want: directive.VisibilityPublic()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := directive.LookupKind(tt.kind)
			if !ok {
				t.Fatalf("LookupKind(%q) not found", tt.kind)
			}
			got, err := buildDirective(spec, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("buildDirective(%q, %v) expected error", tt.kind, tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildDirective(%q, %v): %v", tt.kind, tt.args, err)
			}
			if got.Kind != tt.want.Kind || got.Message != tt.want.Message ||
				got.FormatIndex != tt.want.FormatIndex || got.FirstVararg != tt.want.FirstVararg {
				t.Errorf("buildDirective(%q, %v) = %+v, want %+v", tt.kind, tt.args, got, tt.want)
			}
			if len(got.Positions) != len(tt.want.Positions) {
				t.Fatalf("positions = %v, want %v", got.Positions, tt.want.Positions)
			}
			for i := range got.Positions {
				if got.Positions[i] != tt.want.Positions[i] {
					t.Errorf("positions = %v, want %v", got.Positions, tt.want.Positions)
				}
			}
		})
	}
}
