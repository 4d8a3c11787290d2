package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultCompiler returns the compiler command probed when none is
// named explicitly: $CC when set, otherwise "cc".
func DefaultCompiler() string {
	if cc := strings.TrimSpace(os.Getenv("CC")); cc != "" {
		return cc
	}
	return "cc"
}

// Probe is everything Detect learned about a compiler binary.
type Probe struct {
	Profile Profile
	// Apple marks vendor-native Apple toolchains. It suggests the
	// apple-native build mode; it is not a capability.
	Apple bool
	// Banner is the first line of the compiler's version output.
	Banner string
}

// Detect interrogates the compiler behind cc and assembles its profile.
// Unrecognized output degrades to FamilyUnknown; only a compiler that
// cannot be executed at all yields an error.
func Detect(cc string) (Probe, error) {
	if _, err := exec.LookPath(cc); err != nil {
		return Probe{}, fmt.Errorf("compiler %q not found: %w", cc, err)
	}
	probe := Probe{Banner: firstLine(captureLoose(cc, "--version"))}

	// The macro dump names the family and version unambiguously where
	// supported (clang, gcc). MSVC has no equivalent flag and falls
	// through to banner classification.
	if dump, err := captureExact(cc, "", "-E", "-dM", "-x", "c", "-"); err == nil {
		probe.Profile, probe.Apple = classifyMacroDump(dump)
	}
	if probe.Profile.Family == FamilyUnknown && probe.Banner != "" {
		probe.Profile = ParseVersionBanner(probe.Banner)
		probe.Apple = probe.Apple || strings.Contains(probe.Banner, "Apple")
	}
	if probe.Profile.Family == FamilyClang {
		exts, err := probeExtensions(cc, KnownExtensions())
		if err != nil {
			return probe, fmt.Errorf("extension probe failed: %w", err)
		}
		probe.Profile.Extensions = exts
	}
	return probe, nil
}

// ParseVersionBanner classifies the first line of a compiler's version
// output. It is the fallback for compilers whose preprocessor cannot
// dump macros, and is deliberately conservative: anything it does not
// recognize becomes FamilyUnknown.
func ParseVersionBanner(banner string) Profile {
	line := strings.TrimSpace(firstLine(banner))
	if line == "" {
		return Profile{}
	}
	lower := strings.ToLower(line)

	if idx := strings.Index(lower, "clang version"); idx >= 0 {
		p := Profile{Family: FamilyClang}
		p.Major, p.Minor = scanVersion(lower[idx+len("clang version"):])
		return p
	}
	if strings.Contains(line, "Microsoft") && strings.Contains(line, "Compiler") {
		p := Profile{Family: FamilyMSVC}
		p.Major, p.Minor = scanVersion(line)
		return p
	}
	head, _, _ := strings.Cut(lower, " ")
	head, _, _ = strings.Cut(head, "-") // gcc-12, g++-12
	if head == "gcc" || head == "g++" || strings.Contains(line, "(GCC") {
		p := Profile{Family: FamilyGCC}
		p.Major, p.Minor = scanVersion(line)
		return p
	}
	return Profile{}
}

// scanVersion finds the first dotted version in s and returns its
// leading major.minor pair. Missing or malformed versions yield zeros.
func scanVersion(s string) (major, minor int) {
	for _, field := range strings.Fields(s) {
		field = strings.TrimPrefix(field, "(")
		maj, rest, ok := strings.Cut(field, ".")
		if !ok {
			continue
		}
		majN, err := strconv.Atoi(maj)
		if err != nil {
			continue
		}
		min := rest
		if cut, _, found := strings.Cut(rest, "."); found {
			min = cut
		}
		min = strings.TrimFunc(min, func(r rune) bool { return r < '0' || r > '9' })
		minN, err := strconv.Atoi(min)
		if err != nil {
			continue
		}
		return majN, minN
	}
	return 0, 0
}

func classifyMacroDump(dump string) (Profile, bool) {
	defs := parseDefines(dump)
	_, apple := defs["__APPLE__"]

	// clang defines __GNUC__ for compatibility, so it is checked first.
	if _, ok := defs["__clang__"]; ok {
		p := Profile{Family: FamilyClang}
		p.Major = atoiDefine(defs, "__clang_major__")
		p.Minor = atoiDefine(defs, "__clang_minor__")
		return p, apple
	}
	if _, ok := defs["_MSC_VER"]; ok {
		return Profile{Family: FamilyMSVC}, false
	}
	if _, ok := defs["__GNUC__"]; ok {
		p := Profile{Family: FamilyGCC}
		p.Major = atoiDefine(defs, "__GNUC__")
		p.Minor = atoiDefine(defs, "__GNUC_MINOR__")
		return p, apple
	}
	return Profile{}, apple
}

func parseDefines(dump string) map[string]string {
	defs := make(map[string]string)
	for _, line := range strings.Split(dump, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "#define ")
		if !ok {
			continue
		}
		name, value, _ := strings.Cut(rest, " ")
		defs[name] = strings.TrimSpace(value)
	}
	return defs
}

func atoiDefine(defs map[string]string, name string) int {
	n, err := strconv.Atoi(defs[name])
	if err != nil {
		return 0
	}
	return n
}

// probeExtensions preprocesses a tiny translation unit whose marker
// lines survive only when the corresponding extension is available,
// then reads the markers back out.
func probeExtensions(cc string, exts []string) ([]string, error) {
	out, err := captureExact(cc, probeSource(exts), "-E", "-x", "c", "-")
	if err != nil {
		return nil, err
	}
	return parseProbeOutput(out), nil
}

const probeMarker = "sigil-ext:"

func probeSource(exts []string) string {
	var b strings.Builder
	b.WriteString("#if defined(__has_extension)\n")
	for _, ext := range exts {
		fmt.Fprintf(&b, "#if __has_extension(%s)\n%s %s\n#endif\n", ext, probeMarker, ext)
	}
	b.WriteString("#endif\n")
	return b.String()
}

func parseProbeOutput(out string) []string {
	var exts []string
	for _, line := range strings.Split(out, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), probeMarker)
		if !ok {
			continue
		}
		if ext := strings.TrimSpace(rest); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// captureLoose runs the command and returns whatever text came back on
// stdout, falling back to stderr. Failures are ignored: cl.exe rejects
// --version yet still prints its banner, to stderr.
func captureLoose(name string, args ...string) string {
	cmd := exec.Command(name, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	_ = cmd.Run()
	if s := strings.TrimSpace(stdout.String()); s != "" {
		return s
	}
	return strings.TrimSpace(stderr.String())
}

// captureExact runs the command with the given stdin and returns stdout,
// failing on any nonzero exit.
func captureExact(name, stdin string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", err
		}
		return "", fmt.Errorf("%s: %s", name, msg)
	}
	return stdout.String(), nil
}
