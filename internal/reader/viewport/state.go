// Package viewport tracks the highlighted line and which line is at the top
// of the scroll container.
package viewport

import (
	"math"

	"github.com/RichardViskovic/v-reader/internal/reader/linestore"
)

// OffsetReader reads the live scroll offset of the container.
type OffsetReader interface {
	ScrollOffset() float64
}

// Revealer brings a line into view after it becomes highlighted.
type Revealer interface {
	Reveal(index int)
}

// RevealFunc adapts a function to Revealer.
type RevealFunc func(index int)

// Reveal implements Revealer.
func (f RevealFunc) Reveal(index int) { f(index) }

// State owns the highlight index. At most one handle in the store is
// highlighted, and it is always the handle at the highlight index.
type State struct {
	store    *linestore.Store
	offset   OffsetReader
	revealer Revealer

	index    int
	hasIndex bool
}

// New creates a viewport state over a store. revealer may be nil.
func New(store *linestore.Store, offset OffsetReader, revealer Revealer) *State {
	return &State{
		store:    store,
		offset:   offset,
		revealer: revealer,
	}
}

// SetRevealer replaces the revealer.
func (s *State) SetRevealer(r Revealer) {
	s.revealer = r
}

// LineCount returns the number of lines in the store.
func (s *State) LineCount() int {
	return s.store.Len()
}

// HighlightIndex returns the highlighted line index, if any.
func (s *State) HighlightIndex() (int, bool) {
	return s.index, s.hasIndex
}

// TopVisibleIndex returns the line nearest the current scroll offset,
// clamped to the available lines. It is 0 when there are no lines.
func (s *State) TopVisibleIndex() int {
	count := s.store.Len()
	if count == 0 {
		return 0
	}

	var offset float64
	if s.offset != nil {
		offset = s.offset.ScrollOffset()
	}
	lineHeight := max(s.store.LineHeight(), 1)

	idx := math.Floor(offset / lineHeight)
	switch {
	case math.IsNaN(idx) || idx < 0:
		return 0
	case idx > float64(count-1):
		return count - 1
	default:
		return int(idx)
	}
}

// ClearHighlight removes the highlight. It is a no-op without one.
func (s *State) ClearHighlight() {
	if !s.hasIndex {
		return
	}
	if h := s.store.Handle(s.index); h != nil {
		h.SetHighlighted(false)
	}
	s.index = 0
	s.hasIndex = false
}

// SetHighlight moves the highlight to index and asks the revealer to bring
// it into view. Indices outside the store are ignored.
func (s *State) SetHighlight(index int) {
	next := s.store.Handle(index)
	if next == nil {
		return
	}

	if s.hasIndex {
		if prev := s.store.Handle(s.index); prev != nil {
			prev.SetHighlighted(false)
		}
	}

	next.SetHighlighted(true)
	s.index = index
	s.hasIndex = true

	if s.revealer != nil {
		s.revealer.Reveal(index)
	}
}

// Reset forgets the highlight without touching handles. It is used after a
// rebuild, when the previous handles no longer exist.
func (s *State) Reset() {
	s.index = 0
	s.hasIndex = false
}
