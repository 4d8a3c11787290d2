package main

import (
	"fmt"
	"io"
	"time"

	"sigil/internal/genpipeline"
)

func printStageTimings(out io.Writer, timings *genpipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	if timings.Has(genpipeline.StageResolve) {
		fmt.Fprintf(out, "resolved %.1f ms\n", toMillis(timings.Duration(genpipeline.StageResolve)))
	}
	if timings.Has(genpipeline.StageRender) {
		fmt.Fprintf(out, "rendered %.1f ms\n", toMillis(timings.Duration(genpipeline.StageRender)))
	}
	if timings.Has(genpipeline.StageWrite) {
		fmt.Fprintf(out, "wrote %.1f ms\n", toMillis(timings.Duration(genpipeline.StageWrite)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
