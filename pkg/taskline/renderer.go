package taskline

// Renderer defines how tasks and events are rendered to the terminal.
//
// Each frame, the [TaskRenderer] walks the task hierarchy and calls
// RenderTaskLine for each task header and RenderEventLine for each buffered
// event. The traversal itself is the package-level [RenderTask]; implement
// [TaskVisitor] as well to replace it, e.g. to suppress events when a
// progress bar already encodes them, or to dispatch on payload kinds.
//
// A Renderer may additionally implement [FrameHooks] to advance animation
// state once per frame, and [RetentionPolicyHolder] to choose how many
// events each task buffers.
type Renderer[T, E any] interface {
	// RenderTaskLine writes the single-line header for a task. Write a
	// trailing newline; the frame accounting counts line breaks.
	RenderTaskLine(f *FrameWriter, task TaskView[T, E]) error
	// RenderEventLine writes one buffered event line.
	RenderEventLine(f *FrameWriter, event EventView[T, E]) error
}

// TaskVisitor is an optional Renderer extension that replaces the default
// per-task traversal. Implementations usually call [RenderSubtree] (the
// default body) for tasks they don't treat specially, or [RenderTask] to
// recurse into children.
type TaskVisitor[T, E any] interface {
	RenderTask(f *FrameWriter, task TaskView[T, E]) error
}

// FrameHooks is an optional Renderer extension called once per frame,
// before any task is visited and after the last one. Typical use is
// ticking a spinner in OnRenderStart.
type FrameHooks interface {
	OnRenderStart()
	OnRenderEnd()
}

// RetentionPolicyHolder is an optional Renderer extension that selects the
// per-task event retention policy. Without it (or a [WithRetention]
// option, which takes precedence) the default is Rolling(3).
type RetentionPolicyHolder interface {
	RetentionPolicy() Retention
}

// defaultEventWindow is how many trailing events the default traversal
// shows per active task, regardless of how many the retention policy kept.
const defaultEventWindow = 3

// RenderTask renders one task and its descendants through r, dispatching
// to r's own RenderTask when it implements [TaskVisitor].
func RenderTask[T, E any](r Renderer[T, E], f *FrameWriter, task TaskView[T, E]) error {
	if v, ok := r.(TaskVisitor[T, E]); ok {
		return v.RenderTask(f, task)
	}
	return RenderSubtree(r, f, task)
}

// RenderSubtree is the default per-task traversal: the task's header line,
// then (unless the task completed) the most recent three buffered events
// oldest-first, then every child in sibling order.
//
// Custom [TaskVisitor] implementations delegate here for the standard
// behavior.
func RenderSubtree[T, E any](r Renderer[T, E], f *FrameWriter, task TaskView[T, E]) error {
	if err := r.RenderTaskLine(f, task); err != nil {
		return err
	}
	if !task.Completed() {
		events := task.Events()
		if len(events) > defaultEventWindow {
			events = events[len(events)-defaultEventWindow:]
		}
		for _, ev := range events {
			if err := r.RenderEventLine(f, ev); err != nil {
				return err
			}
		}
	}
	for _, child := range task.Subtasks() {
		if err := RenderTask(r, f, child); err != nil {
			return err
		}
	}
	return nil
}
