package taskline

import (
	"testing"
	"time"
)

func buildTree(t *testing.T) (*store[string, string], TaskID, TaskID, TaskID) {
	t.Helper()
	s := newStore[string, string](DefaultRetention())
	ids := NewIDSource()
	top, mid, leaf := ids.Next(), ids.Next(), ids.Next()
	start(s, top, Root, "top")
	start(s, mid, top, "mid")
	start(s, leaf, mid, "leaf")
	return s, top, mid, leaf
}

func TestTaskViewAccessors(t *testing.T) {
	s, top, mid, _ := buildTree(t)
	event(s, mid, "working")

	v := newTaskView(s, mid)
	if v.Data() != "mid" {
		t.Errorf("Data() = %q, want mid", v.Data())
	}
	if v.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", v.Depth())
	}
	if !v.Active() || v.Completed() || v.Cancelled() {
		t.Error("fresh task should be active")
	}
	if v.Elapsed() < 0 || v.Elapsed() > time.Minute {
		t.Errorf("Elapsed() = %v, implausible", v.Elapsed())
	}
	if v.NumSubtasks() != 1 {
		t.Errorf("NumSubtasks() = %d, want 1", v.NumSubtasks())
	}
	if v.NumEvents() != 1 {
		t.Errorf("NumEvents() = %d, want 1", v.NumEvents())
	}
	if events := v.Events(); len(events) != 1 || events[0].Data() != "working" {
		t.Errorf("Events() = %v", events)
	}

	parent, ok := v.Parent()
	if !ok || parent.ID() != top {
		t.Errorf("Parent() = %v, %v; want %v, true", parent.ID(), ok, top)
	}
}

func TestParentHidesVirtualRoot(t *testing.T) {
	s, top, _, _ := buildTree(t)

	if _, ok := newTaskView(s, top).Parent(); ok {
		t.Error("Parent() of a top-level task must report ok=false")
	}
}

func TestSubtasksPreserveInsertionOrder(t *testing.T) {
	s := newStore[string, string](DefaultRetention())
	ids := NewIDSource()
	parent := ids.Next()
	start(s, parent, Root, "parent")
	names := []string{"first", "second", "third"}
	for _, name := range names {
		start(s, ids.Next(), parent, name)
	}

	subs := newTaskView(s, parent).Subtasks()
	if len(subs) != len(names) {
		t.Fatalf("Subtasks() returned %d views, want %d", len(subs), len(names))
	}
	for i, sub := range subs {
		if sub.Data() != names[i] {
			t.Errorf("Subtasks()[%d] = %q, want %q", i, sub.Data(), names[i])
		}
		if sub.Index() != i {
			t.Errorf("Index() of %q = %d, want %d", sub.Data(), sub.Index(), i)
		}
	}
}

func TestEventViewAttribution(t *testing.T) {
	s, _, mid, _ := buildTree(t)
	event(s, mid, "detail")
	event(s, Root, "announcement")

	taskEvent := newTaskView(s, mid).Events()[0]
	if taskEvent.IsRoot() {
		t.Error("task event reported as root")
	}
	if taskEvent.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", taskEvent.Depth())
	}
	if taskEvent.Task().Data() != "mid" {
		t.Errorf("Task().Data() = %q, want mid", taskEvent.Task().Data())
	}

	rootEvent := EventView[string, string]{store: s, task: Root, index: 0}
	if !rootEvent.IsRoot() {
		t.Error("root event not reported as root")
	}
	if rootEvent.Data() != "announcement" {
		t.Errorf("root event Data() = %q, want announcement", rootEvent.Data())
	}
}

func TestViewWalksToArbitraryTask(t *testing.T) {
	s, top, _, leaf := buildTree(t)

	v := newTaskView(s, leaf).View(top)
	if v.Data() != "top" {
		t.Errorf("View(top).Data() = %q, want top", v.Data())
	}
}
