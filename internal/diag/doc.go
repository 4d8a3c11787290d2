// Package diag defines the diagnostic model shared by manifest and
// directive checks.
//
// Diagnostic is the central record: a severity, a stable code, the
// subject the finding is about (a target name, a directive, a manifest
// key), and a message. Producers collect diagnostics into a Bag, which
// supports sorting, deduplication, and merging. Rendering lives in
// format.go: one stable line per entry for tests and scripts, plus a
// colored variant for terminals.
//
// Codes are grouped by producer: MAN1xxx for manifest rules, DIR2xxx
// for directive-argument rules. Keep the model deterministic — equal
// inputs must always format to equal output.
package diag
