package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

type renderedDiagnostic struct {
	Severity string
	Code     string
	Subject  string
	Message  string
}

// FormatStable renders diagnostics into a stable, single-line-per-entry
// representation suitable for tests and scripted consumers. Entries are
// sorted deterministically and returned as one string (empty when there
// is nothing to render).
func FormatStable(diags []Diagnostic, includeNotes bool) string {
	rendered := make([]renderedDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, renderedDiagnostic{
			Severity: severityLabel(d.Severity),
			Code:     d.Code.ID(),
			Subject:  d.Subject,
			Message:  sanitizeMessage(d.Message),
		})
		if includeNotes {
			for _, note := range d.Notes {
				rendered = append(rendered, renderedDiagnostic{
					Severity: "note",
					Code:     d.Code.ID(),
					Subject:  d.Subject,
					Message:  sanitizeMessage(note),
				})
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Subject != dj.Subject {
			return di.Subject < dj.Subject
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s", d.Severity, d.Code, formatSubject(d.Subject)+d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	subjectColor = color.New(color.Bold)
)

// WritePretty renders diagnostics for a terminal, one entry per line
// with colored severity labels. The order of diags is preserved; sort
// the bag first when stable output matters.
func WritePretty(out io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		label := severityColor(d.Severity).Sprint(severityLabel(d.Severity))
		fmt.Fprintf(out, "%s %s %s%s\n", label, d.Code.ID(), subjectColor.Sprint(formatSubject(d.Subject)), sanitizeMessage(d.Message))
		for _, note := range d.Notes {
			fmt.Fprintf(out, "  note: %s\n", sanitizeMessage(note))
		}
	}
}

func severityColor(sev Severity) *color.Color {
	switch sev {
	case SevError:
		return errorColor
	case SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func formatSubject(subject string) string {
	if subject == "" {
		return ""
	}
	return subject + ": "
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
