package tasklog

import (
	"context"
	"errors"
	"testing"

	"github.com/ShayCichocki/taskline/pkg/taskline"
)

// recordingTransport captures every sent action in order.
type recordingTransport struct {
	actions []taskline.Action[string, string]
	err     error
}

func (t *recordingTransport) Send(a taskline.Action[string, string]) error {
	t.actions = append(t.actions, a)
	return t.err
}

func TestBeginEventEndOrdering(t *testing.T) {
	transport := &recordingTransport{}
	inst := New[string, string](transport)

	ctx, span := inst.Begin(context.Background(), "compile")
	inst.Event(ctx, "parsing")
	span.End()

	kinds := []taskline.ActionKind{taskline.KindTaskStart, taskline.KindEvent, taskline.KindTaskEnd}
	if len(transport.actions) != len(kinds) {
		t.Fatalf("sent %d actions, want %d", len(transport.actions), len(kinds))
	}
	for i, want := range kinds {
		if transport.actions[i].Kind != want {
			t.Errorf("action %d kind = %v, want %v", i, transport.actions[i].Kind, want)
		}
	}

	start := transport.actions[0]
	if start.Task != "compile" {
		t.Errorf("start payload = %q, want compile", start.Task)
	}
	if !start.Parent.IsRoot() {
		t.Errorf("top-level span parent = %v, want root", start.Parent)
	}
	if event := transport.actions[1]; event.Parent != span.ID() {
		t.Errorf("event parent = %v, want span id %v", event.Parent, span.ID())
	}
	if end := transport.actions[2]; end.ID != span.ID() {
		t.Errorf("end id = %v, want %v", end.ID, span.ID())
	}
}

func TestNestedBeginBuildsTree(t *testing.T) {
	transport := &recordingTransport{}
	inst := New[string, string](transport)

	ctx, outer := inst.Begin(context.Background(), "outer")
	_, inner := inst.Begin(ctx, "inner")

	if inner.ID() == outer.ID() {
		t.Fatal("nested spans share an id")
	}
	innerStart := transport.actions[1]
	if innerStart.Parent != outer.ID() {
		t.Errorf("inner parent = %v, want outer id %v", innerStart.Parent, outer.ID())
	}
}

func TestEventWithoutSpanGoesToRoot(t *testing.T) {
	transport := &recordingTransport{}
	inst := New[string, string](transport)

	inst.Event(context.Background(), "orphan")

	if !transport.actions[0].Parent.IsRoot() {
		t.Errorf("parent = %v, want root", transport.actions[0].Parent)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	transport := &recordingTransport{}
	inst := New[string, string](transport)

	_, span := inst.Begin(context.Background(), "once")
	span.End()
	span.End()
	span.End()

	ends := 0
	for _, a := range transport.actions {
		if a.Kind == taskline.KindTaskEnd {
			ends++
		}
	}
	if ends != 1 {
		t.Errorf("sent %d end actions, want 1", ends)
	}
}

func TestSpanEventAttribution(t *testing.T) {
	transport := &recordingTransport{}
	inst := New[string, string](transport)

	ctx, outer := inst.Begin(context.Background(), "outer")
	_, inner := inst.Begin(ctx, "inner")

	// Span.Event pins the target even when the ambient context has moved on.
	outer.Event("from outer")

	last := transport.actions[len(transport.actions)-1]
	if last.Parent != outer.ID() {
		t.Errorf("event parent = %v, want outer %v (not inner %v)", last.Parent, outer.ID(), inner.ID())
	}
}

func TestSpanFromContext(t *testing.T) {
	transport := &recordingTransport{}
	inst := New[string, string](transport)

	if _, ok := SpanFromContext[string, string](context.Background()); ok {
		t.Error("SpanFromContext on empty ctx reported a span")
	}

	ctx, span := inst.Begin(context.Background(), "work")
	got, ok := SpanFromContext[string, string](ctx)
	if !ok || got != span {
		t.Errorf("SpanFromContext = %v, %v; want the begun span", got, ok)
	}
}

func TestCancelAll(t *testing.T) {
	transport := &recordingTransport{}
	inst := New[string, string](transport)

	inst.CancelAll()

	if len(transport.actions) != 1 || transport.actions[0].Kind != taskline.KindCancelAll {
		t.Errorf("actions = %v, want a single CancelAll", transport.actions)
	}
}

func TestSendErrorsNeverPropagate(t *testing.T) {
	transport := &recordingTransport{err: errors.New("transport full")}
	inst := New[string, string](transport)

	// None of these may panic or surface the error.
	ctx, span := inst.Begin(context.Background(), "doomed")
	inst.Event(ctx, "still fine")
	span.End()
	inst.CancelAll()
}
