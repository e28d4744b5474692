package taskline

type retentionKind uint8

const (
	retainRolling retentionKind = iota
	retainLast
	retainAll
	retainNone
)

// Retention is the rule governing how many buffered events a task keeps.
//
// It is applied every time an event is appended to a task below the root.
// Root-level events are exempt: they accumulate until the next render pass
// flushes them to scrollback.
type Retention struct {
	kind retentionKind
	n    int
}

// Rolling keeps at most n events, dropping the oldest first. n < 1 is
// treated as 1.
func Rolling(n int) Retention {
	if n < 1 {
		n = 1
	}
	return Retention{kind: retainRolling, n: n}
}

// KeepLast keeps only the most recent event.
func KeepLast() Retention {
	return Retention{kind: retainLast}
}

// KeepAll keeps every event, unbounded.
func KeepAll() Retention {
	return Retention{kind: retainAll}
}

// Drop discards events immediately.
func Drop() Retention {
	return Retention{kind: retainNone}
}

// DefaultRetention is a rolling window of 3 events.
func DefaultRetention() Retention {
	return Rolling(3)
}

// appendEvent pushes ev onto events under policy r.
func appendEvent[E any](r Retention, events []E, ev E) []E {
	switch r.kind {
	case retainNone:
		return events
	case retainLast:
		return append(events[:0], ev)
	case retainAll:
		return append(events, ev)
	default:
		events = append(events, ev)
		if len(events) > r.n {
			// Shift in place so the backing array is reused.
			copy(events, events[len(events)-r.n:])
			events = events[:r.n]
		}
		return events
	}
}
