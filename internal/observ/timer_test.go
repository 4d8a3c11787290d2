package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimer_PhasesAndSummary(t *testing.T) {
	timer := NewTimer()

	stopLoad := timer.Phase("manifest")
	time.Sleep(time.Millisecond)
	stopLoad("sigil.toml")

	stopGen := timer.Phase("generate")
	stopGen("3 targets")
	stopGen("ignored second stop")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("Report() has %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "manifest" || report.Phases[0].Note != "sigil.toml" {
		t.Errorf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Errorf("manifest phase recorded no duration")
	}
	if report.Phases[1].Note != "3 targets" {
		t.Errorf("second stop overwrote the note: %q", report.Phases[1].Note)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("total %v is below the manifest phase %v", report.TotalMS, report.Phases[0].DurationMS)
	}

	summary := timer.Summary()
	for _, want := range []string{"phases:", "manifest", "(sigil.toml)", "(3 targets)", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() missing %q:\n%s", want, summary)
		}
	}
}

func TestTimer_EmptyReport(t *testing.T) {
	report := NewTimer().Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Errorf("empty timer Report() = %+v", report)
	}
}
