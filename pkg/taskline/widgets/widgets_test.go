package widgets

import (
	"strings"
	"testing"

	"github.com/ShayCichocki/taskline/pkg/taskline"
)

func TestSpinnerCyclesThroughFrames(t *testing.T) {
	s := Custom([]string{"a", "b", "c"})

	var got []string
	for i := 0; i < 4; i++ {
		got = append(got, s.Frame())
		s.Tick()
	}

	want := []string{"a", "b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCustomSpinnerFallsBackToDots(t *testing.T) {
	s := Custom(nil)
	dots := Dots()
	if s.Frame() != dots.Frame() {
		t.Errorf("empty Custom frame = %q, want the Dots frame %q", s.Frame(), dots.Frame())
	}
}

func TestSpinnerPresetsNonEmpty(t *testing.T) {
	for name, s := range map[string]Spinner{"dots": Dots(), "line": Line(), "arrow": Arrow()} {
		if s.Frame() == "" {
			t.Errorf("%s spinner has an empty frame", name)
		}
	}
}

func TestProgressBarRendering(t *testing.T) {
	tests := []struct {
		name        string
		done, total uint64
		want        string
	}{
		{"empty", 0, 4, "[....]   0%"},
		{"half", 2, 4, "[##..]  50%"},
		{"full", 4, 4, "[####] 100%"},
		{"zero-total", 0, 0, "[....]   0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewProgressBar(tt.done, tt.total).Width(4).Chars('#', '.')
			if got := bar.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgressBarRatioClamps(t *testing.T) {
	if r := NewProgressBar(10, 4).Ratio(); r != 1 {
		t.Errorf("Ratio() with done > total = %v, want 1", r)
	}
	if r := NewProgressBar(0, 0).Ratio(); r != 0 {
		t.Errorf("Ratio() with zero total = %v, want 0", r)
	}
}

func TestProgressBarDefaultWidth(t *testing.T) {
	bar := NewProgressBar(1, 2).Chars('#', '.')
	body := strings.TrimSuffix(strings.TrimPrefix(bar.String(), "["), "]  50%")
	if len(body) != 20 {
		t.Errorf("bar body %q has %d cells, want 20", body, len(body))
	}
}

// treeRenderer records rendered lines with their tree prefixes.
type treeRenderer struct {
	lines []string
}

func (r *treeRenderer) RenderTaskLine(f *taskline.FrameWriter, task taskline.TaskView[string, string]) error {
	r.lines = append(r.lines, TreeIndent(task)+task.Data())
	return nil
}

func (r *treeRenderer) RenderEventLine(*taskline.FrameWriter, taskline.EventView[string, string]) error {
	return nil
}

func TestTreeIndentPrefixes(t *testing.T) {
	r := &treeRenderer{}
	tr := taskline.NewTaskRenderer[string, string](r)
	ids := taskline.NewIDSource()

	first := ids.Next()
	childA := ids.Next()
	grandchild := ids.Next()
	childB := ids.Next()
	second := ids.Next()

	tr.Update(taskline.StartTask[string, string](first, taskline.Root, "first"))
	tr.Update(taskline.StartTask[string, string](childA, first, "child a"))
	tr.Update(taskline.StartTask[string, string](grandchild, childA, "grandchild"))
	tr.Update(taskline.StartTask[string, string](childB, first, "child b"))
	tr.Update(taskline.StartTask[string, string](second, taskline.Root, "second"))

	if err := tr.Render(discard{}); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"├── first",
		"│   ├── child a",
		"│   │   └── grandchild",
		"│   └── child b",
		"└── second",
	}
	if len(r.lines) != len(want) {
		t.Fatalf("rendered %d lines, want %d: %q", len(r.lines), len(want), r.lines)
	}
	for i := range want {
		if r.lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, r.lines[i], want[i])
		}
	}
}

func TestTreeIndentSingleTopLevelTask(t *testing.T) {
	r := &treeRenderer{}
	tr := taskline.NewTaskRenderer[string, string](r)
	tr.Update(taskline.StartTask[string, string](taskline.NewIDSource().Next(), taskline.Root, "only"))

	if err := tr.Render(discard{}); err != nil {
		t.Fatal(err)
	}
	if len(r.lines) != 1 || r.lines[0] != "└── only" {
		t.Errorf("lines = %q, want [\"└── only\"]", r.lines)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
