package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ShayCichocki/taskline/pkg/taskline"
	"github.com/ShayCichocki/taskline/pkg/tasklog"
)

// recordingTransport captures actions; safe for the parallel stages.
type recordingTransport struct {
	mu      sync.Mutex
	actions []taskline.Action[string, string]
}

func (t *recordingTransport) Send(a taskline.Action[string, string]) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions = append(t.actions, a)
	return nil
}

func (t *recordingTransport) snapshot() []taskline.Action[string, string] {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]taskline.Action[string, string], len(t.actions))
	copy(out, t.actions)
	return out
}

func TestRunEmitsBalancedStartsAndEnds(t *testing.T) {
	transport := &recordingTransport{}
	inst := tasklog.New[string, string](transport)

	Run(context.Background(), inst, Build(), 0)

	starts, ends := 0, 0
	for _, a := range transport.snapshot() {
		switch a.Kind {
		case taskline.KindTaskStart:
			starts++
		case taskline.KindTaskEnd:
			ends++
		}
	}
	// build, compile, 3 compilation units, link.
	if starts != 6 {
		t.Errorf("starts = %d, want 6", starts)
	}
	if ends != starts {
		t.Errorf("ends = %d, want %d (every started stage must end)", ends, starts)
	}
}

func TestRunNestsStagesUnderParents(t *testing.T) {
	transport := &recordingTransport{}
	inst := tasklog.New[string, string](transport)

	Run(context.Background(), inst, Build(), 0)

	ids := map[string]taskline.TaskID{}
	parents := map[string]taskline.TaskID{}
	for _, a := range transport.snapshot() {
		if a.Kind == taskline.KindTaskStart {
			ids[a.Task] = a.ID
			parents[a.Task] = a.Parent
		}
	}

	if !parents["build"].IsRoot() {
		t.Error("build stage not attached to root")
	}
	if parents["compile"] != ids["build"] {
		t.Error("compile stage not nested under build")
	}
	if parents["compile core"] != ids["compile"] {
		t.Error("compilation unit not nested under compile")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	transport := &recordingTransport{}
	inst := tasklog.New[string, string](transport)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	Run(ctx, inst, Build(), 1)

	if n := len(transport.snapshot()); n != 0 {
		t.Errorf("cancelled run still emitted %d actions", n)
	}
}

func TestScaleZeroSkipsSleeping(t *testing.T) {
	transport := &recordingTransport{}
	inst := tasklog.New[string, string](transport)

	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(context.Background(), inst, CI(), 0)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scale-0 run did not finish promptly")
	}
}

func TestCIIncludesReleaseTaggedDeploy(t *testing.T) {
	stages := CI()
	last := stages[len(stages)-1]
	if !strings.HasPrefix(last.Name, "deploy ") || len(last.Name) == len("deploy ") {
		t.Errorf("final stage = %q, want a release-tagged deploy", last.Name)
	}

	// Release ids must differ between runs.
	if other := CI(); other[len(other)-1].Name == last.Name {
		t.Error("two CI pipelines share a release id")
	}
}
