package taskline

import "io"

// RendererOption configures a [TaskRenderer].
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	retention    Retention
	hasRetention bool
}

// WithRetention overrides the per-task event retention policy. Takes
// precedence over a policy supplied by the Renderer itself through
// [RetentionPolicyHolder].
func WithRetention(r Retention) RendererOption {
	return func(o *rendererOptions) {
		o.retention = r
		o.hasRetention = true
	}
}

// TaskRenderer owns the task tree and a [Renderer], applies incoming
// actions, and repaints the terminal.
//
// Each [TaskRenderer.Render] call splits output in two: a flush region
// (root-level events plus completed or cancelled top-level tasks, printed
// once and appended permanently to scrollback) and an active region
// (everything still live, erased and redrawn on the next call).
//
// Single-owner: apply actions and render from one goroutine only.
type TaskRenderer[T, E any] struct {
	store *store[T, E]
	r     Renderer[T, E]
	// frameLines is the erasable-line count of the previous active region.
	frameLines int
}

// NewTaskRenderer creates a TaskRenderer driving r.
func NewTaskRenderer[T, E any](r Renderer[T, E], opts ...RendererOption) *TaskRenderer[T, E] {
	var o rendererOptions
	for _, opt := range opts {
		opt(&o)
	}
	retention := DefaultRetention()
	if h, ok := r.(RetentionPolicyHolder); ok {
		retention = h.RetentionPolicy()
	}
	if o.hasRetention {
		retention = o.retention
	}
	return &TaskRenderer[T, E]{
		store: newStore[T, E](retention),
		r:     r,
	}
}

// Update applies a single action to the task tree. No rendering happens
// here; call Render after applying a batch.
func (tr *TaskRenderer[T, E]) Update(a Action[T, E]) {
	tr.store.apply(a)
}

// Drain applies every currently-available action from src and reports
// whether the source may still produce more. Building block for custom
// render loops.
func (tr *TaskRenderer[T, E]) Drain(src ActionSource[T, E]) bool {
	return src.DrainInto(tr)
}

// Len returns the number of tasks currently in the tree.
func (tr *TaskRenderer[T, E]) Len() int {
	return tr.store.len()
}

// Contains reports whether id is currently present in the tree.
func (tr *TaskRenderer[T, E]) Contains(id TaskID) bool {
	_, ok := tr.store.get(id)
	return ok && !id.IsRoot()
}

// Render repaints the tree to target.
//
// The previous active region is erased first. Root-level events and
// completed or cancelled top-level tasks (with their full subtrees) are
// then flushed permanently and pruned from the tree; surviving top-level
// tasks are drawn into the new active region.
//
// On error the frame aborts immediately and the erasable-line accounting
// keeps its previous value, so the next attempt erases the same region
// again instead of corrupting the diff state.
func (tr *TaskRenderer[T, E]) Render(target io.Writer) error {
	hooks, hasHooks := tr.r.(FrameHooks)
	if hasHooks {
		hooks.OnRenderStart()
	}

	// Move the cursor back to the top of the previous active region.
	f := newFrameWriter(target, tr.frameLines)
	if err := f.clearFrame(); err != nil {
		return err
	}

	queue, err := tr.flushRoot(f)
	if err != nil {
		return err
	}

	// Active region. Top-level tasks render breadth-first relative to each
	// other; RenderTask recurses depth-first inside each of them.
	f = newFrameWriter(target, 0)
	for _, id := range queue {
		t, ok := tr.store.get(id)
		if !ok || !t.hasData {
			continue
		}
		if err := RenderTask(tr.r, f, newTaskView(tr.store, id)); err != nil {
			return err
		}
	}

	tr.frameLines = f.Lines()
	if err := f.flush(); err != nil {
		return err
	}

	if hasHooks {
		hooks.OnRenderEnd()
	}
	return nil
}

// flushRoot emits the non-erasable region: buffered root events, then
// every completed or cancelled top-level task (whole subtree). Flushed
// tasks are pruned; the ids of the survivors come back in sibling order
// for the active pass. Pruning happens before any survivor is rendered.
func (tr *TaskRenderer[T, E]) flushRoot(f *FrameWriter) ([]TaskID, error) {
	root := tr.store.root()

	for i := range root.events {
		ev := EventView[T, E]{store: tr.store, task: Root, index: i}
		if err := tr.r.RenderEventLine(f, ev); err != nil {
			return nil, err
		}
	}
	root.events = root.events[:0]

	var active, flushed []TaskID
	for _, id := range root.children {
		t, ok := tr.store.get(id)
		if !ok {
			continue
		}
		if t.completed || t.cancelled {
			if err := RenderTask(tr.r, f, newTaskView(tr.store, id)); err != nil {
				return nil, err
			}
			flushed = append(flushed, id)
		} else {
			active = append(active, id)
		}
	}

	for _, id := range flushed {
		tr.store.remove(id)
	}

	return active, nil
}
