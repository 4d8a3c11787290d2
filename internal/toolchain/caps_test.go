package toolchain

import "testing"

func TestProfile_Capabilities(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		expected Caps
	}{
		{
			name:    "clang without extensions",
			profile: Profile{Family: FamilyClang},
			expected: Caps{
				Deprecated: true,
				Format:     true,
				NoReturn:   true,
				Visibility: true,
			},
		},
		{
			name: "clang with both message extensions",
			profile: Profile{
				Family:     FamilyClang,
				Extensions: []string{ExtDeprecatedMessage, ExtUnavailableMessage},
			},
			expected: Caps{
				Deprecated:         true,
				DeprecatedMessage:  true,
				UnavailableMessage: true,
				Format:             true,
				NoReturn:           true,
				Visibility:         true,
			},
		},
		{
			name: "clang with deprecated message only",
			profile: Profile{
				Family:     FamilyClang,
				Extensions: []string{ExtDeprecatedMessage},
			},
			expected: Caps{
				Deprecated:        true,
				DeprecatedMessage: true,
				Format:            true,
				NoReturn:          true,
				Visibility:        true,
			},
		},
		{
			name: "clang ignores unrelated extensions",
			profile: Profile{
				Family:     FamilyClang,
				Extensions: []string{"blocks", "cxx_attributes"},
			},
			expected: Caps{
				Deprecated: true,
				Format:     true,
				NoReturn:   true,
				Visibility: true,
			},
		},
		{
			name:     "gcc 2.95 predates the attribute surface",
			profile:  Profile{Family: FamilyGCC, Major: 2, Minor: 95},
			expected: Caps{},
		},
		{
			name:    "gcc 3.0 grants the base set",
			profile: Profile{Family: FamilyGCC, Major: 3},
			expected: Caps{
				Deprecated: true,
				Format:     true,
				NoReturn:   true,
				Visibility: true,
			},
		},
		{
			name:    "gcc 4.3 has no deprecation messages",
			profile: Profile{Family: FamilyGCC, Major: 4, Minor: 3},
			expected: Caps{
				Deprecated: true,
				Format:     true,
				NoReturn:   true,
				Visibility: true,
			},
		},
		{
			name:    "gcc 4.5 gains deprecation messages",
			profile: Profile{Family: FamilyGCC, Major: 4, Minor: 5},
			expected: Caps{
				Deprecated:        true,
				DeprecatedMessage: true,
				Format:            true,
				NoReturn:          true,
				Visibility:        true,
			},
		},
		{
			name:    "gcc 5.0 gains deprecation messages",
			profile: Profile{Family: FamilyGCC, Major: 5},
			expected: Caps{
				Deprecated:        true,
				DeprecatedMessage: true,
				Format:            true,
				NoReturn:          true,
				Visibility:        true,
			},
		},
		{
			name:    "gcc 11.4 still never grants unavailable messages",
			profile: Profile{Family: FamilyGCC, Major: 11, Minor: 4},
			expected: Caps{
				Deprecated:        true,
				DeprecatedMessage: true,
				Format:            true,
				NoReturn:          true,
				Visibility:        true,
			},
		},
		{
			name:     "msvc has no attribute surface",
			profile:  Profile{Family: FamilyMSVC},
			expected: Caps{},
		},
		{
			name:     "unknown compiler has nothing",
			profile:  Profile{Family: FamilyUnknown},
			expected: Caps{},
		},
		{
			name:     "unknown compiler ignores version fields",
			profile:  Profile{Family: FamilyUnknown, Major: 99, Minor: 9},
			expected: Caps{},
		},
		{
			name:    "nonnull opt-in is copied through",
			profile: Profile{Family: FamilyGCC, Major: 11, NonNull: true},
			expected: Caps{
				Deprecated:        true,
				DeprecatedMessage: true,
				Format:            true,
				NoReturn:          true,
				Visibility:        true,
				NonNull:           true,
			},
		},
		{
			name:     "nonnull opt-in survives even on unknown",
			profile:  Profile{Family: FamilyUnknown, NonNull: true},
			expected: Caps{NonNull: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.Capabilities()
			if got != tt.expected {
				t.Errorf("Capabilities() = %+v, want %+v", got, tt.expected)
			}
			// Derivation must be stable across calls.
			if again := tt.profile.Capabilities(); again != got {
				t.Errorf("Capabilities() not deterministic: %+v then %+v", got, again)
			}
		})
	}
}

func TestCaps_String(t *testing.T) {
	tests := []struct {
		name     string
		caps     Caps
		expected string
	}{
		{
			name:     "empty set",
			caps:     Caps{},
			expected: "none",
		},
		{
			name:     "base set",
			caps:     Caps{Deprecated: true, Format: true, NoReturn: true, Visibility: true},
			expected: "deprecated,format,noreturn,visibility",
		},
		{
			name: "full set",
			caps: Caps{
				Deprecated:         true,
				DeprecatedMessage:  true,
				UnavailableMessage: true,
				Format:             true,
				NoReturn:           true,
				Visibility:         true,
				NonNull:            true,
			},
			expected: "deprecated,deprecated-message,unavailable-message,format,noreturn,visibility,nonnull",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCaps_Flags(t *testing.T) {
	flags := Caps{}.Flags()
	if len(flags) != 7 {
		t.Fatalf("Flags() returned %d entries, want 7", len(flags))
	}
	seen := map[string]bool{}
	for _, f := range flags {
		if seen[f.Name] {
			t.Errorf("duplicate flag name %q", f.Name)
		}
		seen[f.Name] = true
	}
}

func TestFamily_String(t *testing.T) {
	tests := []struct {
		family   Family
		expected string
	}{
		{FamilyUnknown, "unknown"},
		{FamilyClang, "clang"},
		{FamilyGCC, "gcc"},
		{FamilyMSVC, "msvc"},
	}
	for _, tt := range tests {
		if got := tt.family.String(); got != tt.expected {
			t.Errorf("Family(%d).String() = %q, want %q", tt.family, got, tt.expected)
		}
	}
}

func TestParseFamily(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Family
		ok       bool
	}{
		{name: "clang", input: "clang", expected: FamilyClang, ok: true},
		{name: "gcc", input: "gcc", expected: FamilyGCC, ok: true},
		{name: "msvc upper", input: "MSVC", expected: FamilyMSVC, ok: true},
		{name: "unknown is a valid family", input: "unknown", expected: FamilyUnknown, ok: true},
		{name: "none aliases unknown", input: "none", expected: FamilyUnknown, ok: true},
		{name: "padded", input: "  gcc  ", expected: FamilyGCC, ok: true},
		{name: "garbage", input: "tcc", expected: FamilyUnknown, ok: false},
		{name: "empty", input: "", expected: FamilyUnknown, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFamily(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ParseFamily(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestProfile_HasExtension(t *testing.T) {
	p := Profile{Family: FamilyClang, Extensions: []string{ExtDeprecatedMessage}}
	if !p.HasExtension(ExtDeprecatedMessage) {
		t.Errorf("HasExtension(%q) = false, want true", ExtDeprecatedMessage)
	}
	if p.HasExtension(ExtUnavailableMessage) {
		t.Errorf("HasExtension(%q) = true, want false", ExtUnavailableMessage)
	}
}

func TestProfile_String(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		expected string
	}{
		{name: "versionless clang", profile: Profile{Family: FamilyClang}, expected: "clang"},
		{name: "gcc with version", profile: Profile{Family: FamilyGCC, Major: 4, Minor: 5}, expected: "gcc 4.5"},
		{name: "gcc major only", profile: Profile{Family: FamilyGCC, Major: 5}, expected: "gcc 5.0"},
		{name: "unknown", profile: Profile{}, expected: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}
