package vet

import (
	"fmt"
	"strconv"
	"strings"

	"sigil/internal/diag"
	"sigil/internal/directive"
)

// Directive checks one directive's arguments. Resolution degrades
// silently on bad arguments (a zero index still renders); these rules
// surface the mistakes instead.
func Directive(d directive.Directive, bag *diag.Bag) {
	subject := directiveSubject(d)
	switch d.Kind {
	case directive.KindDeprecatedMessage, directive.KindInternalMessage:
		if strings.TrimSpace(d.Message) == "" {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.DirEmptyMessage,
				Subject:  subject,
				Message:  "replacement message is empty; use the message-less form instead",
			})
		}
	case directive.KindFormat:
		checkIndex(d.FormatIndex, "format position", subject, bag)
		checkIndex(d.FirstVararg, "vararg position", subject, bag)
		if d.FormatIndex >= 1 && d.FirstVararg >= 1 && d.FirstVararg <= d.FormatIndex {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.DirVarargOrder,
				Subject:  subject,
				Message:  fmt.Sprintf("vararg position %d does not follow format position %d", d.FirstVararg, d.FormatIndex),
			})
		}
	case directive.KindNonNull:
		if len(d.Positions) == 0 {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.DirNoPositions,
				Subject:  subject,
				Message:  "no argument positions given; the attribute would cover nothing",
			})
			return
		}
		seen := make(map[int]bool, len(d.Positions))
		for _, pos := range d.Positions {
			checkIndex(pos, "argument position", subject, bag)
			if pos >= 1 && seen[pos] {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevWarning,
					Code:     diag.DirDuplicatePosition,
					Subject:  subject,
					Message:  fmt.Sprintf("position %d repeats; duplicates are meaningless", pos),
				})
			}
			seen[pos] = true
		}
	}
}

func checkIndex(idx int, what, subject string, bag *diag.Bag) {
	if idx >= 1 {
		return
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.DirBadIndex,
		Subject:  subject,
		Message:  fmt.Sprintf("%s %d is not a 1-based argument index", what, idx),
	})
}

// directiveSubject renders a directive the way a header author wrote
// it, for use as a diagnostic subject.
func directiveSubject(d directive.Directive) string {
	switch d.Kind {
	case directive.KindDeprecatedMessage, directive.KindInternalMessage:
		return fmt.Sprintf("%s(%q)", d.Kind, d.Message)
	case directive.KindFormat:
		return fmt.Sprintf("%s(%d,%d)", d.Kind, d.FormatIndex, d.FirstVararg)
	case directive.KindNonNull:
		parts := make([]string, len(d.Positions))
		for i, pos := range d.Positions {
			parts[i] = strconv.Itoa(pos)
		}
		return fmt.Sprintf("%s(%s)", d.Kind, strings.Join(parts, ","))
	default:
		return d.Kind.String()
	}
}
