// Package observ times the top-level phases of one CLI command run,
// backing the --timings output.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed span of a command run, e.g. loading the manifest
// or generating headers.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer collects named phases as a command executes. Commands time
// their phases sequentially; it is not safe for concurrent use.
type Timer struct {
	phases []Phase
}

// NewTimer creates an empty Timer.
func NewTimer() *Timer { return &Timer{} }

// Phase starts timing a named span and returns its stop function. The
// note handed to stop is shown next to the duration in the summary,
// e.g. the manifest path or a target count. Calling stop more than
// once keeps the first measurement.
func (t *Timer) Phase(name string) func(note string) {
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name})
	start := time.Now()
	stopped := false
	return func(note string) {
		if stopped {
			return
		}
		stopped = true
		t.phases[idx].Dur = time.Since(start)
		t.phases[idx].Note = note
	}
}

// Summary renders the recorded phases and their total, one line each.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("phases:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		fmt.Fprintf(&b, "  %-12s %8.2f ms", p.Name, toMillisF(p.Dur))
		if p.Note != "" {
			fmt.Fprintf(&b, "  (%s)", p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %8.2f ms\n", "total", toMillisF(total))
	return b.String()
}

// PhaseReport is the serializable form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable form of a whole run, in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report collects the phases and their total duration.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: toMillisF(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = toMillisF(total)
	return report
}

func toMillisF(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
