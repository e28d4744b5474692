package taskline

import (
	"slices"
	"time"
)

// record is a single task in the arena. Tree edges are stored as TaskIDs,
// never as pointers, so removal can't leave dangling references.
type record[T, E any] struct {
	depth     int
	completed bool
	cancelled bool
	startedAt time.Time
	parent    TaskID
	// hasData is false only for the virtual root.
	hasData bool
	data    T
	events  []E
	// children holds direct child ids in insertion order, which is also
	// render order. A child id appears in exactly one parent's list.
	children []TaskID
}

// store is the arena holding every task record, keyed by TaskID. All
// mutation goes through apply; views read it without copying. Single-owner:
// exactly one goroutine applies actions and renders.
type store[T, E any] struct {
	tasks     map[TaskID]*record[T, E]
	retention Retention
}

func newStore[T, E any](retention Retention) *store[T, E] {
	s := &store[T, E]{
		tasks:     make(map[TaskID]*record[T, E]),
		retention: retention,
	}
	s.tasks[Root] = &record[T, E]{}
	return s
}

func (s *store[T, E]) get(id TaskID) (*record[T, E], bool) {
	t, ok := s.tasks[id]
	return t, ok
}

func (s *store[T, E]) root() *record[T, E] {
	return s.tasks[Root]
}

// resolve maps an id to itself if present, otherwise to Root. TaskStart and
// Event both attach to the root when the named parent is gone or was never
// observed.
func (s *store[T, E]) resolve(id TaskID) TaskID {
	if _, ok := s.tasks[id]; ok {
		return id
	}
	return Root
}

// apply runs one action through the state machine. Actions are applied
// strictly serially, in the exact order received.
func (s *store[T, E]) apply(a Action[T, E]) {
	switch a.Kind {
	case KindTaskStart:
		parent := s.resolve(a.Parent)
		p := s.tasks[parent]
		s.tasks[a.ID] = &record[T, E]{
			depth:     p.depth + 1,
			startedAt: time.Now(),
			parent:    parent,
			hasData:   true,
			data:      a.Task,
		}
		p.children = append(p.children, a.ID)
	case KindEvent:
		target := s.tasks[s.resolve(a.Parent)]
		if target == s.root() {
			// Root events are flushed (and cleared) on the next render,
			// so no retention bound applies here.
			target.events = append(target.events, a.Event)
			return
		}
		target.events = appendEvent(s.retention, target.events, a.Event)
	case KindTaskEnd:
		if t, ok := s.tasks[a.ID]; ok {
			t.completed = true
		}
	case KindCancelAll:
		s.cancelAll()
	}
}

// cancelAll marks every task reachable from the root as cancelled, breadth
// first. The root itself is never cancelled. Idempotent.
func (s *store[T, E]) cancelAll() {
	queue := slices.Clone(s.root().children)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t, ok := s.tasks[id]
		if !ok {
			continue
		}
		t.cancelled = true
		queue = append(queue, t.children...)
	}
}

// remove deletes id and its entire subtree from the arena and detaches id
// from its parent's child list, preserving the order of the survivors.
// Called only during a render pass, for flushed root-level tasks.
func (s *store[T, E]) remove(id TaskID) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	if p, ok := s.tasks[t.parent]; ok {
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	s.removeSubtree(id)
}

func (s *store[T, E]) removeSubtree(id TaskID) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	delete(s.tasks, id)
	for _, child := range t.children {
		s.removeSubtree(child)
	}
}

// len reports the number of real tasks (the root is not counted).
func (s *store[T, E]) len() int {
	return len(s.tasks) - 1
}
