package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sigil/internal/genpipeline"
	"sigil/internal/ui"
)

// progressMode selects how gen reports per-target progress: the live
// target list, plain "wrote ..." lines, or whichever suits the
// terminal.
type progressMode int

const (
	progressAuto progressMode = iota
	progressLive
	progressPlain
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressLive, nil
	case "off":
		return progressPlain, nil
	default:
		return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// live reports whether the progress list should drive the terminal.
// Auto follows stdout, so piping gen's output falls back to plain
// lines.
func (m progressMode) live() bool {
	switch m {
	case progressLive:
		return true
	case progressPlain:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type generateOutcome struct {
	result genpipeline.Result
	err    error
}

func runGenerateWithUI(ctx context.Context, title string, targets []string, req *genpipeline.Request) (genpipeline.Result, error) {
	if req == nil {
		return genpipeline.Result{}, fmt.Errorf("missing generation request")
	}
	events := make(chan genpipeline.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = genpipeline.ChannelSink{Ch: events}
		res, err := genpipeline.Generate(ctx, &reqCopy)
		outcomeCh <- generateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, targets, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
