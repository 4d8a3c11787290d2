package diag

// Diagnostic is one finding about a manifest or a directive.
type Diagnostic struct {
	Severity Severity
	Code     Code
	// Subject names what the finding is about: a target name, a
	// manifest key, or a directive rendering. Empty means the whole
	// input.
	Subject string
	Message string
	// Notes add secondary context. Each note must add something the
	// message does not already say.
	Notes []string
}
