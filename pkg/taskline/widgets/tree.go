package widgets

import (
	"strings"

	"github.com/ShayCichocki/taskline/pkg/taskline"
)

// TreeIndent computes the box-drawing prefix for a task's position in the
// hierarchy:
//
//	root task
//	├── child 1
//	│   ├── grandchild a
//	│   └── grandchild b
//	└── child 2
//
// Prepend it to the task line:
//
//	fmt.Fprintf(f, "%s%s\n", widgets.TreeIndent(task), task.Data())
func TreeIndent[T, E any](task taskline.TaskView[T, E]) string {
	if task.Depth() == 0 {
		return ""
	}

	// Walk up by id, recording at each level whether the node is the last
	// among its siblings.
	lastAtLevel := make([]bool, 0, task.Depth())
	current := task
	for {
		parent, ok := current.Parent()
		if !ok {
			// Top level: the parent is the virtual root, which Parent
			// hides, so read its child count through an explicit view.
			root := current.View(taskline.Root)
			lastAtLevel = append(lastAtLevel, current.Index() == root.NumSubtasks()-1)
			break
		}
		lastAtLevel = append(lastAtLevel, current.Index() == parent.NumSubtasks()-1)
		current = parent
	}

	var b strings.Builder
	for i := len(lastAtLevel) - 1; i >= 0; i-- {
		isSelf := i == 0
		switch {
		case isSelf && lastAtLevel[i]:
			b.WriteString("└── ")
		case isSelf:
			b.WriteString("├── ")
		case lastAtLevel[i]:
			b.WriteString("    ")
		default:
			b.WriteString("│   ")
		}
	}
	return b.String()
}
