package directive

import "testing"

func TestLookupKind(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		ok    bool
	}{
		{name: "deprecated", input: "deprecated", kind: KindDeprecated, ok: true},
		{name: "case-insensitive", input: "NoReturn", kind: KindNoReturn, ok: true},
		{name: "message variant", input: "deprecated-msg", kind: KindDeprecatedMessage, ok: true},
		{name: "unknown", input: "frobnicate", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := LookupKind(tt.input)
			if ok != tt.ok {
				t.Fatalf("LookupKind(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && spec.Kind != tt.kind {
				t.Errorf("LookupKind(%q).Kind = %v, want %v", tt.input, spec.Kind, tt.kind)
			}
		})
	}
}

func TestKindSpecs(t *testing.T) {
	specs := KindSpecs()
	if len(specs) != len(kindRegistry) {
		t.Fatalf("KindSpecs() returned %d entries, want %d", len(specs), len(kindRegistry))
	}
	for i := 1; i < len(specs); i++ {
		if specs[i-1].Name >= specs[i].Name {
			t.Errorf("KindSpecs() not sorted: %q before %q", specs[i-1].Name, specs[i].Name)
		}
	}
	// Catalog names must round-trip through Kind.String so listings and
	// lookups agree.
	for _, spec := range specs {
		if spec.Kind.String() != spec.Name {
			t.Errorf("spec %q names kind %v which renders as %q", spec.Name, spec.Kind, spec.Kind.String())
		}
	}
}
