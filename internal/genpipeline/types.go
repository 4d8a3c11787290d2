package genpipeline

import (
	"sync"
	"time"
)

// Stage describes a high-level generation phase.
type Stage string

const (
	// StageResolve assembles the toolchain profile and capability set.
	StageResolve Stage = "resolve"
	// StageRender produces the prelude header text.
	StageRender Stage = "render"
	// StageWrite persists the header to the output directory.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the target is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the target is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the target is done.
	StatusDone Status = "done"
	// StatusError indicates the target failed.
	StatusError Status = "error"
)

// Event reports progress for one target (or for the overall pipeline
// when Target is empty).
type Event struct {
	Target  string
	Stage   Stage
	Status  Status
	Cached  bool
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events as targets move through the stages.
// Workers emit directly, so implementations must tolerate concurrent
// calls.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink bridges the pipeline to the gen progress display. Every
// event is forwarded into Ch, blocking the emitting worker when the
// display falls behind; a nil channel discards events.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Timings accumulates per-stage durations. Targets are processed in
// parallel, so recorded durations are cumulative work, not wall time.
// Safe for concurrent use.
type Timings struct {
	mu     sync.Mutex
	stages map[Stage]time.Duration
}

// Add accumulates a duration for the given stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t *Timings) Has(stage Stage) bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t *Timings) Duration(stage Stage) time.Duration {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t *Timings) Sum(stages ...Stage) time.Duration {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
