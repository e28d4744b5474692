// Package pipeline simulates a nested build/test/deploy pipeline and
// instruments it through tasklog. It exists so the CLI's demo commands
// have a realistic multi-goroutine producer without shelling out to real
// tools.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/taskline/pkg/tasklog"
)

// Stage is one unit of simulated work. Stages nest; each stage becomes a
// task in the tree, each log line an event.
type Stage struct {
	// Name is the task payload shown on the task line.
	Name string
	// Work is the simulated duration, spread across the log lines.
	Work time.Duration
	// Logs are event lines emitted while the stage runs.
	Logs []string
	// Stages are child stages, run after the logs.
	Stages []Stage
	// Parallel runs the child stages concurrently instead of in order.
	Parallel bool
}

// Run executes stages in order, instrumenting through inst. scale
// multiplies every Work duration; 0 skips sleeping entirely, which keeps
// tests fast and deterministic. Returns early when ctx is cancelled.
func Run(ctx context.Context, inst *tasklog.Instrument[string, string], stages []Stage, scale float64) {
	for _, st := range stages {
		if ctx.Err() != nil {
			return
		}
		runStage(ctx, inst, st, scale)
	}
}

func runStage(ctx context.Context, inst *tasklog.Instrument[string, string], st Stage, scale float64) {
	ctx, span := inst.Begin(ctx, st.Name)
	defer span.End()

	pause := time.Duration(0)
	if n := len(st.Logs) + 1; st.Work > 0 {
		pause = time.Duration(float64(st.Work) * scale / float64(n))
	}
	for _, msg := range st.Logs {
		if !sleep(ctx, pause) {
			return
		}
		span.Event(msg)
	}

	if st.Parallel {
		var wg sync.WaitGroup
		for _, child := range st.Stages {
			wg.Add(1)
			go func(child Stage) {
				defer wg.Done()
				runStage(ctx, inst, child, scale)
			}(child)
		}
		wg.Wait()
	} else {
		for _, child := range st.Stages {
			if ctx.Err() != nil {
				return
			}
			runStage(ctx, inst, child, scale)
		}
	}
	sleep(ctx, pause)
}

// sleep waits for d, returning false when ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Build returns a cargo-style build pipeline: dependency fetch, parallel
// compilation units, then a link step.
func Build() []Stage {
	return []Stage{
		{
			Name: "build",
			Work: 2 * time.Second,
			Logs: []string{"resolving dependency graph"},
			Stages: []Stage{
				{
					Name:     "compile",
					Work:     3 * time.Second,
					Parallel: true,
					Stages: []Stage{
						{Name: "compile core", Work: 2 * time.Second, Logs: []string{"parsing", "type checking", "codegen"}},
						{Name: "compile cli", Work: 1500 * time.Millisecond, Logs: []string{"parsing", "codegen"}},
						{Name: "compile proto", Work: time.Second, Logs: []string{"generating stubs"}},
					},
				},
				{Name: "link", Work: time.Second, Logs: []string{"linking binary"}},
			},
		},
	}
}

// CI returns a deeper pipeline modeled on a hosted CI run: checkout,
// build, a parallel test matrix, then a deploy tagged with a unique
// release id.
func CI() []Stage {
	release := uuid.NewString()[:8]
	return []Stage{
		{Name: "checkout", Work: time.Second, Logs: []string{"fetching refs", "checking out HEAD"}},
		Build()[0],
		{
			Name:     "test",
			Work:     4 * time.Second,
			Parallel: true,
			Stages: []Stage{
				{Name: "unit [1/3]", Work: 2 * time.Second, Logs: []string{"running 142 tests", "ok"}},
				{Name: "unit [2/3]", Work: 3 * time.Second, Logs: []string{"running 98 tests", "ok"}},
				{Name: "integration [3/3]", Work: 4 * time.Second, Logs: []string{"starting fixtures", "running 17 tests", "ok"}},
			},
		},
		{
			Name: fmt.Sprintf("deploy %s", release),
			Work: 2 * time.Second,
			Logs: []string{"uploading artifacts", "rolling out", "healthy"},
		},
	}
}
