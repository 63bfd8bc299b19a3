// Package reader owns the reading state: the current text, its layout, the
// highlighted line and the scroll animation that follows it.
//
// A Reader is single-threaded. Every method must be called from the goroutine
// that also runs the scroll.Scheduler frames, normally the application event
// loop. Load and Resize are synchronous; observers never see a partially
// rebuilt set of lines.
package reader

import (
	"time"

	"github.com/RichardViskovic/v-reader/internal/reader/layout"
	"github.com/RichardViskovic/v-reader/internal/reader/linestore"
	"github.com/RichardViskovic/v-reader/internal/reader/metrics"
	"github.com/RichardViskovic/v-reader/internal/reader/nav"
	"github.com/RichardViskovic/v-reader/internal/reader/scroll"
	"github.com/RichardViskovic/v-reader/internal/reader/viewport"
)

// Options configures a Reader.
type Options struct {
	// Metrics measures the container text is laid out in.
	Metrics metrics.Source

	// Surface is the scroll container.
	Surface scroll.Surface

	// Scheduler runs animation frames.
	Scheduler scroll.Scheduler

	// Clock stamps the start of animations. Defaults to the system clock.
	Clock scroll.Clock

	// ScrollDuration is the length of one scroll animation.
	ScrollDuration time.Duration

	// LeadLines is the context kept above a highlighted line.
	LeadLines float64

	// RowsPerLine is the rendered height of one line box.
	RowsPerLine float64

	// FontLineHeight is the line height used when line boxes report none.
	FontLineHeight float64
}

// DefaultOptions returns options with the standard scroll and line metrics.
// Metrics, Surface and Scheduler must still be provided.
func DefaultOptions() Options {
	return Options{
		Clock:          scroll.SystemClock{},
		ScrollDuration: scroll.DefaultDuration,
		LeadLines:      scroll.DefaultLeadLines,
		RowsPerLine:    1,
		FontLineHeight: 1,
	}
}

// LoadResult reports a completed render of new text.
type LoadResult struct {
	Lines  int
	Budget int
}

// ResizeResult reports a completed reflow after a resize.
type ResizeResult struct {
	OldBudget int
	NewBudget int
	Lines     int
	Offset    float64
	Reflowed  bool
}

// LineView is a read-only snapshot of one line handle.
type LineView struct {
	Text        string
	Top         float64
	Height      float64
	Highlighted bool
}

// Reader is the reading state object.
type Reader struct {
	metrics metrics.Source
	surface scroll.Surface

	store    *linestore.Store
	view     *viewport.State
	animator *scroll.Animator
	nav      *nav.Controller

	raw    string
	budget int
}

// New creates a reader with no text loaded.
func New(opts Options) *Reader {
	r := &Reader{
		metrics: opts.Metrics,
		surface: opts.Surface,
		budget:  1,
	}

	r.store = linestore.New(opts.RowsPerLine, opts.FontLineHeight)
	r.animator = scroll.NewAnimator(opts.Surface, opts.Scheduler, opts.Clock, opts.ScrollDuration)
	r.animator.SetLeadLines(opts.LeadLines)
	r.view = viewport.New(r.store, opts.Surface, viewport.RevealFunc(func(index int) {
		r.animator.ScrollHighlightIntoPlace(r.store, index)
	}))
	r.nav = nav.New(r.view)

	return r
}

// Load replaces the document, lays it out from the top and drops the
// highlight.
func (r *Reader) Load(text string) LoadResult {
	r.raw = text
	r.reflow()
	r.surface.SetScrollOffset(0)

	return LoadResult{Lines: r.store.Len(), Budget: r.budget}
}

// Resize re-measures the container and re-wraps the current text. The raw
// scroll offset is restored verbatim afterwards; the highlight is dropped
// because line indices do not survive a re-wrap.
func (r *Reader) Resize() ResizeResult {
	old := r.budget

	if r.raw == "" {
		r.budget = r.measure()
		return ResizeResult{OldBudget: old, NewBudget: r.budget, Offset: r.surface.ScrollOffset()}
	}

	offset := r.surface.ScrollOffset()
	r.reflow()
	r.surface.SetScrollOffset(offset)

	return ResizeResult{
		OldBudget: old,
		NewBudget: r.budget,
		Lines:     r.store.Len(),
		Offset:    r.surface.ScrollOffset(),
		Reflowed:  true,
	}
}

func (r *Reader) reflow() {
	r.budget = r.measure()
	lines := layout.Wrap(r.raw, r.budget)

	// A run started against the old lines must not move the new ones.
	r.animator.Cancel()
	r.store.Build(lines)
	r.view.Reset()
}

func (r *Reader) measure() int {
	if r.metrics == nil {
		return 1
	}
	return r.metrics.Measure().Budget()
}

// Execute runs a navigation command.
func (r *Reader) Execute(cmd nav.Command) bool {
	return r.nav.Execute(cmd)
}

// Toggle highlights the top visible line or clears the highlight.
func (r *Reader) Toggle() bool { return r.nav.Toggle() }

// Move shifts the highlight by delta lines.
func (r *Reader) Move(delta int) bool { return r.nav.Move(delta) }

// MoveUp moves the highlight up one line.
func (r *Reader) MoveUp() bool { return r.nav.MoveUp() }

// MoveDown moves the highlight down one line.
func (r *Reader) MoveDown() bool { return r.nav.MoveDown() }

// Lines returns a snapshot of the current line handles.
func (r *Reader) Lines() []LineView {
	handles := r.store.Handles()
	views := make([]LineView, len(handles))
	for i, h := range handles {
		views[i] = LineView{
			Text:        h.Text(),
			Top:         h.Top(),
			Height:      h.Height(),
			Highlighted: h.Highlighted(),
		}
	}
	return views
}

// LineCount returns the number of display lines.
func (r *Reader) LineCount() int { return r.store.Len() }

// Line returns the snapshot of line i.
func (r *Reader) Line(i int) (LineView, bool) {
	h := r.store.Handle(i)
	if h == nil {
		return LineView{}, false
	}
	return LineView{Text: h.Text(), Top: h.Top(), Height: h.Height(), Highlighted: h.Highlighted()}, true
}

// HighlightIndex returns the highlighted line, if any.
func (r *Reader) HighlightIndex() (int, bool) { return r.view.HighlightIndex() }

// TopVisibleIndex returns the line at the current scroll offset.
func (r *Reader) TopVisibleIndex() int { return r.view.TopVisibleIndex() }

// ScrollOffset returns the live scroll offset.
func (r *Reader) ScrollOffset() float64 { return r.surface.ScrollOffset() }

// Budget returns the character budget of the current layout.
func (r *Reader) Budget() int { return r.budget }

// LineHeight returns the cached line height.
func (r *Reader) LineHeight() float64 { return r.store.LineHeight() }

// ContentHeight returns the total height of all lines.
func (r *Reader) ContentHeight() float64 { return r.store.ContentHeight() }

// Empty reports whether there is nothing to read.
func (r *Reader) Empty() bool { return r.store.Len() == 0 }

// RawText returns the current text exactly as loaded.
func (r *Reader) RawText() string { return r.raw }

// Animating reports whether a scroll animation is in flight.
func (r *Reader) Animating() bool { return r.animator.Active() }
