package diag

// Severity ranks how serious a diagnostic is.
type Severity uint8

const (
	// SevInfo is for informational findings.
	SevInfo Severity = iota
	// SevWarning is for findings that deserve attention but do not
	// block generation.
	SevWarning
	// SevError is for findings that make the manifest or directive
	// unusable.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
