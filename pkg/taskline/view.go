package taskline

import (
	"slices"
	"time"
)

// TaskView is a read-only cursor over one task, passed to [Renderer]
// callbacks. Views borrow the task store and are valid until the next
// action is applied; they never allow mutation.
type TaskView[T, E any] struct {
	store *store[T, E]
	id    TaskID
}

func newTaskView[T, E any](s *store[T, E], id TaskID) TaskView[T, E] {
	return TaskView[T, E]{store: s, id: id}
}

// ID returns the id of this task.
func (v TaskView[T, E]) ID() TaskID {
	return v.id
}

// Data returns the caller-defined payload stored on this task.
func (v TaskView[T, E]) Data() T {
	return v.record().data
}

// Depth returns the nesting depth. Children of the root are depth 1.
func (v TaskView[T, E]) Depth() int {
	return v.record().depth
}

// Elapsed returns how long ago this task started.
func (v TaskView[T, E]) Elapsed() time.Duration {
	return time.Since(v.record().startedAt)
}

// Active reports whether the task is neither completed nor cancelled.
func (v TaskView[T, E]) Active() bool {
	return !v.Completed() && !v.Cancelled()
}

// Completed reports whether the task has ended.
func (v TaskView[T, E]) Completed() bool {
	return v.record().completed
}

// Cancelled reports whether the task was marked cancelled by a CancelAll.
func (v TaskView[T, E]) Cancelled() bool {
	return v.record().cancelled
}

// Parent returns a view of the parent task. ok is false for top-level
// tasks, whose parent is the virtual root.
func (v TaskView[T, E]) Parent() (parent TaskView[T, E], ok bool) {
	p := v.record().parent
	if v.id.IsRoot() || p.IsRoot() {
		return TaskView[T, E]{}, false
	}
	return newTaskView(v.store, p), true
}

// Subtasks returns views of the direct children in insertion order. The
// slice is freshly built per call; the underlying tree is not copied.
func (v TaskView[T, E]) Subtasks() []TaskView[T, E] {
	children := v.record().children
	out := make([]TaskView[T, E], len(children))
	for i, id := range children {
		out[i] = newTaskView(v.store, id)
	}
	return out
}

// NumSubtasks returns the number of direct children.
func (v TaskView[T, E]) NumSubtasks() int {
	return len(v.record().children)
}

// Events returns views of the buffered events in arrival order.
func (v TaskView[T, E]) Events() []EventView[T, E] {
	n := len(v.record().events)
	out := make([]EventView[T, E], n)
	for i := range out {
		out[i] = EventView[T, E]{store: v.store, task: v.id, index: i}
	}
	return out
}

// NumEvents returns the number of buffered events.
func (v TaskView[T, E]) NumEvents() int {
	return len(v.record().events)
}

// Index returns this task's zero-based position among its siblings, for
// numbering like "[2/7]".
func (v TaskView[T, E]) Index() int {
	parent := v.store.tasks[v.record().parent]
	return slices.Index(parent.children, v.id)
}

// View returns a cursor over another task in the same tree. Useful for
// walking ancestors by id, e.g. when computing tree-drawing prefixes.
func (v TaskView[T, E]) View(id TaskID) TaskView[T, E] {
	return newTaskView(v.store, id)
}

func (v TaskView[T, E]) record() *record[T, E] {
	return v.store.tasks[v.id]
}

// EventView is a read-only cursor over one buffered event, passed to
// [Renderer.RenderEventLine].
type EventView[T, E any] struct {
	store *store[T, E]
	task  TaskID
	index int
}

// Data returns the caller-defined payload stored on this event.
func (v EventView[T, E]) Data() E {
	return v.store.tasks[v.task].events[v.index]
}

// IsRoot reports whether this event belongs to the virtual root. Root
// events are rendered without indentation semantics.
func (v EventView[T, E]) IsRoot() bool {
	return v.task.IsRoot()
}

// Depth returns the nesting depth of the owning task.
func (v EventView[T, E]) Depth() int {
	return v.store.tasks[v.task].depth
}

// Task returns a view of the owning task.
func (v EventView[T, E]) Task() TaskView[T, E] {
	return newTaskView(v.store, v.task)
}
