// Package genpipeline renders prelude headers for every manifest
// target, in parallel, with optional caching and progress reporting.
package genpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sigil/internal/expcache"
	"sigil/internal/manifest"
	"sigil/internal/prelude"
)

// Request describes one generation run.
type Request struct {
	Manifest *manifest.Manifest
	// Targets limits the run to the named targets. Empty means all, in
	// manifest order.
	Targets []string
	// Tool is the generator identity stamped into banners and cache
	// keys, e.g. "sigil 0.1.0".
	Tool string
	// Cache is consulted before rendering and updated after. Nil
	// disables caching.
	Cache *expcache.Cache
	// Jobs caps worker parallelism. Zero or negative uses GOMAXPROCS.
	Jobs     int
	Progress ProgressSink
	Timings  *Timings
}

// TargetResult describes one generated header.
type TargetResult struct {
	Target string
	Path   string
	Cached bool
	Bytes  int
}

// Result is the outcome of a generation run. Targets keeps manifest
// order regardless of worker scheduling.
type Result struct {
	Targets []TargetResult
}

// Generate renders and writes one header per requested target. The
// first failing target aborts the run; already-written headers are
// left in place.
func Generate(ctx context.Context, req *Request) (Result, error) {
	if req == nil || req.Manifest == nil {
		return Result{}, fmt.Errorf("missing manifest")
	}
	targets, err := selectTargets(req.Manifest, req.Targets)
	if err != nil {
		return Result{}, err
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	emit := func(evt Event) {
		if req.Progress != nil {
			req.Progress.OnEvent(evt)
		}
	}
	for _, target := range targets {
		emit(Event{Target: target.Name, Status: StatusQueued})
	}

	// Result slots are indexed per goroutine, so no mutex is needed.
	results := make([]TargetResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(targets)))

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			started := time.Now()
			res, err := generateOne(req, target, emit)
			if err != nil {
				emit(Event{Target: target.Name, Status: StatusError, Err: err, Elapsed: time.Since(started)})
				return fmt.Errorf("target %q: %w", target.Name, err)
			}
			emit(Event{Target: target.Name, Status: StatusDone, Cached: res.Cached, Elapsed: time.Since(started)})
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{Targets: results}, err
	}
	return Result{Targets: results}, nil
}

func selectTargets(m *manifest.Manifest, names []string) ([]manifest.TargetConfig, error) {
	if len(names) == 0 {
		return m.Config.Targets, nil
	}
	out := make([]manifest.TargetConfig, 0, len(names))
	for _, name := range names {
		target, ok := m.Target(name)
		if !ok {
			return nil, fmt.Errorf("unknown target %q (configured: %v)", name, m.TargetNames())
		}
		out = append(out, target)
	}
	return out, nil
}

func generateOne(req *Request, target manifest.TargetConfig, emit func(Event)) (TargetResult, error) {
	emit(Event{Target: target.Name, Stage: StageResolve, Status: StatusWorking})
	resolveStart := time.Now()
	profile, err := target.Profile()
	if err != nil {
		return TargetResult{}, err
	}
	header := prelude.Header{
		Library: req.Manifest.Config.Library.Name,
		Prefix:  req.Manifest.Config.Library.Prefix,
		Guard:   req.Manifest.Config.Library.Guard,
		Tool:    req.Tool,
		Macros:  req.Manifest.Config.Output.Macros,
		Profile: profile,
		Mode:    target.BuildMode(),
	}
	key := expcache.Key(req.Tool, header)
	req.Timings.Add(StageResolve, time.Since(resolveStart))

	emit(Event{Target: target.Name, Stage: StageRender, Status: StatusWorking})
	renderStart := time.Now()
	text, cached := cachedRender(req.Cache, key, target.Name)
	if !cached {
		text = prelude.Render(header)
		// Cache updates are best effort; a read-only cache directory
		// must not fail the run.
		_ = req.Cache.Put(key, &expcache.Payload{Target: target.Name, Header: text})
	}
	req.Timings.Add(StageRender, time.Since(renderStart))

	emit(Event{Target: target.Name, Stage: StageWrite, Status: StatusWorking})
	writeStart := time.Now()
	path := req.Manifest.HeaderPath(target.Name)
	if err := writeAtomic(path, []byte(text)); err != nil {
		return TargetResult{}, err
	}
	req.Timings.Add(StageWrite, time.Since(writeStart))

	return TargetResult{
		Target: target.Name,
		Path:   path,
		Cached: cached,
		Bytes:  len(text),
	}, nil
}

func cachedRender(cache *expcache.Cache, key expcache.Digest, target string) (string, bool) {
	if cache == nil {
		return "", false
	}
	var payload expcache.Payload
	found, err := cache.Get(key, &payload)
	if err != nil || !found {
		return "", false
	}
	if payload.Target != target {
		// Same rendering inputs under a different target name; the
		// text is still valid but keep the miss path for clarity of
		// reporting.
		return "", false
	}
	return payload.Header, true
}

// writeAtomic writes via a temp file and rename so a crashed run never
// leaves a truncated header behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
