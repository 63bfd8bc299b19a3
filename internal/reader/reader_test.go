package reader

import (
	"strings"
	"testing"
	"time"

	"github.com/RichardViskovic/v-reader/internal/reader/layout"
	"github.com/RichardViskovic/v-reader/internal/reader/metrics"
	"github.com/RichardViskovic/v-reader/internal/reader/nav"
	"github.com/RichardViskovic/v-reader/internal/reader/scroll"
)

type budgetSource struct{ budget int }

func (b *budgetSource) Measure() metrics.Measurement {
	return metrics.FixedBudget(b.budget).Measure()
}

type testSurface struct{ offset float64 }

func (s *testSurface) ScrollOffset() float64       { return s.offset }
func (s *testSurface) SetScrollOffset(off float64) { s.offset = off }

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type harness struct {
	reader  *Reader
	source  *budgetSource
	surface *testSurface
	frames  *scroll.FrameQueue
	clock   *testClock
}

func newHarness(budget int) *harness {
	h := &harness{
		source:  &budgetSource{budget: budget},
		surface: &testSurface{},
		frames:  &scroll.FrameQueue{},
		clock:   &testClock{now: time.Unix(5000, 0)},
	}
	opts := DefaultOptions()
	opts.Metrics = h.source
	opts.Surface = h.surface
	opts.Scheduler = h.frames
	opts.Clock = h.clock
	h.reader = New(opts)
	return h
}

// settle advances past the animation duration and runs every pending frame.
func (h *harness) settle() {
	for i := 0; h.frames.Pending() && i < 100; i++ {
		h.clock.now = h.clock.now.Add(100 * time.Millisecond)
		h.frames.Run(h.clock.now)
	}
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return strings.Join(lines, "\n")
}

func texts(r *Reader) []string {
	var out []string
	for _, l := range r.Lines() {
		out = append(out, l.Text)
	}
	return out
}

func TestWorkedExample(t *testing.T) {
	h := newHarness(5)
	r := h.reader

	res := r.Load("abcde fghij\n\nklmno")
	if res.Lines != 4 || res.Budget != 5 {
		t.Fatalf("unexpected load result %+v", res)
	}

	want := []string{"abcde", "fghij", layout.Placeholder, "klmno"}
	got := texts(r)
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	r.Toggle()
	r.MoveDown()
	r.MoveDown()
	if idx, ok := r.HighlightIndex(); !ok || idx != 2 {
		t.Fatalf("expected highlight on placeholder line 2, got %d", idx)
	}

	r.MoveDown()
	line, _ := r.Line(3)
	if !line.Highlighted || line.Text != "klmno" {
		t.Errorf("expected klmno highlighted, got %+v", line)
	}

	h.settle()
	// Line 3 with two lines of lead context.
	if r.ScrollOffset() != 1 {
		t.Errorf("expected offset 1, got %v", r.ScrollOffset())
	}
}

func TestEmptyDocument(t *testing.T) {
	h := newHarness(10)
	r := h.reader

	res := r.Load("")
	if res.Lines != 0 || !r.Empty() {
		t.Fatalf("expected empty document, got %+v", res)
	}
	for _, cmd := range []nav.Command{nav.CommandToggle, nav.CommandMoveDown, nav.CommandMoveUp} {
		if r.Execute(cmd) {
			t.Errorf("%s should do nothing without text", cmd)
		}
	}
	if h.frames.Pending() {
		t.Error("no animation expected")
	}
}

func TestLoadResetsState(t *testing.T) {
	h := newHarness(10)
	r := h.reader

	r.Load(numberedLines(30))
	h.surface.offset = 12
	r.Toggle()
	if !r.Animating() {
		t.Fatal("expected an animation after toggle")
	}

	r.Load("fresh text")
	if _, ok := r.HighlightIndex(); ok {
		t.Error("load should drop the highlight")
	}
	if r.ScrollOffset() != 0 {
		t.Errorf("load should scroll to top, got %v", r.ScrollOffset())
	}
	if r.Animating() {
		t.Error("load should cancel the animation")
	}

	h.settle()
	if r.ScrollOffset() != 0 {
		t.Errorf("stale frames moved the new document to %v", r.ScrollOffset())
	}
	if r.RawText() != "fresh text" {
		t.Errorf("unexpected raw text %q", r.RawText())
	}
}

func TestHighlightScrollsWithLead(t *testing.T) {
	h := newHarness(10)
	r := h.reader
	r.Load(numberedLines(30))
	h.surface.offset = 10

	r.Toggle()
	if idx, _ := r.HighlightIndex(); idx != 10 {
		t.Fatalf("expected top visible line 10, got %d", idx)
	}
	h.settle()
	if r.ScrollOffset() != 8 {
		t.Errorf("expected offset 8, got %v", r.ScrollOffset())
	}

	r.Move(-9)
	h.settle()
	if idx, _ := r.HighlightIndex(); idx != 1 {
		t.Fatalf("expected highlight 1, got %d", idx)
	}
	if r.ScrollOffset() != 0 {
		t.Errorf("target should clamp at 0, got %v", r.ScrollOffset())
	}
}

func TestResizeRestoresOffset(t *testing.T) {
	h := newHarness(4)
	r := h.reader
	r.Load(numberedLines(20))
	if r.LineCount() != 20 {
		t.Fatalf("expected 20 lines, got %d", r.LineCount())
	}

	r.Toggle()
	h.settle()
	h.surface.offset = 7.25

	h.source.budget = 2
	res := r.Resize()

	if !res.Reflowed || res.OldBudget != 4 || res.NewBudget != 2 {
		t.Fatalf("unexpected resize result %+v", res)
	}
	if r.LineCount() != 40 {
		t.Errorf("expected 40 lines after rewrap, got %d", r.LineCount())
	}
	if r.ScrollOffset() != 7.25 {
		t.Errorf("expected raw offset 7.25 restored, got %v", r.ScrollOffset())
	}
	if _, ok := r.HighlightIndex(); ok {
		t.Error("resize should drop the highlight")
	}
}

func TestResizeCancelsAnimation(t *testing.T) {
	h := newHarness(10)
	r := h.reader
	r.Load(numberedLines(30))
	h.surface.offset = 20

	r.Toggle()
	r.Resize()
	h.settle()

	if r.ScrollOffset() != 20 {
		t.Errorf("animation should not survive a reflow, offset %v", r.ScrollOffset())
	}
}

func TestResizeWithoutText(t *testing.T) {
	h := newHarness(10)
	r := h.reader

	h.source.budget = 3
	res := r.Resize()
	if res.Reflowed {
		t.Error("nothing to reflow without text")
	}
	if r.Budget() != 3 {
		t.Errorf("expected budget 3, got %d", r.Budget())
	}
}

func TestContentHeight(t *testing.T) {
	h := newHarness(10)
	r := h.reader
	r.Load(numberedLines(7))

	if r.ContentHeight() != 7 {
		t.Errorf("expected content height 7, got %v", r.ContentHeight())
	}
	if r.LineHeight() != 1 {
		t.Errorf("expected line height 1, got %v", r.LineHeight())
	}
}
