package taskline

import (
	"fmt"
	"sync/atomic"
)

// TaskID identifies a task for the lifetime of the process.
//
// The zero value is [Root], the virtual top-level container that holds
// root-level events and top-level tasks. Root is never rendered as a task
// itself, and ids issued by an [IDSource] never equal it.
//
// The generation component keeps ids unique even when a producer recycles
// its own identifiers: two IDSources never issue the same (num, gen) pair.
type TaskID struct {
	num uint64
	gen uint64
}

// Root is the reserved id of the virtual top-level container.
var Root TaskID

// IsRoot reports whether this id refers to the virtual root.
func (id TaskID) IsRoot() bool {
	return id == Root
}

// String returns a short debug form like "task-3.1".
func (id TaskID) String() string {
	if id.IsRoot() {
		return "root"
	}
	return fmt.Sprintf("task-%d.%d", id.num, id.gen)
}

// generations numbers IDSources so that ids from distinct sources can
// never alias each other.
var generations atomic.Uint64

// IDSource issues unique, monotonically increasing TaskIDs.
//
// A single atomic counter is enough: ids only need to be unique and
// ordered, not synchronized with any other state. Safe for concurrent use
// by any number of producer goroutines.
type IDSource struct {
	gen  uint64
	next atomic.Uint64
}

// NewIDSource creates an id source with a fresh generation.
func NewIDSource() *IDSource {
	return &IDSource{gen: generations.Add(1)}
}

// Next returns the next TaskID.
//
// Panics if the counter wraps around: continuing past exhaustion would
// alias a stale task and silently corrupt the tree.
func (s *IDSource) Next() TaskID {
	n := s.next.Add(1)
	if n == 0 {
		panic("taskline: TaskID space exhausted")
	}
	return TaskID{num: n, gen: s.gen}
}

// ActionKind discriminates the four Action variants.
type ActionKind uint8

const (
	// KindTaskStart creates a new task under a parent.
	KindTaskStart ActionKind = iota + 1
	// KindEvent appends a buffered event to a task (or the root).
	KindEvent
	// KindTaskEnd marks a task completed.
	KindTaskEnd
	// KindCancelAll marks every reachable task cancelled.
	KindCancelAll
)

// Action is a discrete notification describing a task or event lifecycle
// change. T is the caller-defined payload type stored per task, E the
// payload stored per event.
//
// Use the constructors ([StartTask], [AppendEvent], [EndTask], [CancelAll])
// rather than filling the struct by hand.
type Action[T, E any] struct {
	// Kind selects the variant.
	Kind ActionKind
	// ID is the subject task for TaskStart and TaskEnd.
	ID TaskID
	// Parent is the attachment point for TaskStart and Event. Root (or an
	// id no longer present) attaches to the virtual root.
	Parent TaskID
	// Task is the payload for TaskStart.
	Task T
	// Event is the payload for Event.
	Event E
}

// StartTask builds a TaskStart action. The producer is responsible for id
// uniqueness; ids from an [IDSource] satisfy that. If parent is Root or
// refers to a task that has already been pruned, the new task attaches to
// the root.
func StartTask[T, E any](id, parent TaskID, data T) Action[T, E] {
	return Action[T, E]{Kind: KindTaskStart, ID: id, Parent: parent, Task: data}
}

// AppendEvent builds an Event action attributed to parent. Root (or an
// unknown id) attributes the event to the virtual root.
func AppendEvent[T, E any](parent TaskID, data E) Action[T, E] {
	return Action[T, E]{Kind: KindEvent, Parent: parent, Event: data}
}

// EndTask builds a TaskEnd action. Ending an unknown id is a silent no-op:
// a task may legitimately close after being pruned.
func EndTask[T, E any](id TaskID) Action[T, E] {
	return Action[T, E]{Kind: KindTaskEnd, ID: id}
}

// CancelAll builds an action that marks every task in the tree cancelled.
// Idempotent. Typically sent on shutdown so the final frame shows open
// tasks as cancelled rather than silently truncated.
func CancelAll[T, E any]() Action[T, E] {
	return Action[T, E]{Kind: KindCancelAll}
}
