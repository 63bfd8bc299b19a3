// Package linestore holds the on-screen handles for the current layout.
package linestore

// Handle is the on-screen representation of one display line.
// Handles are owned by a Store and are discarded on every Build.
type Handle struct {
	text        string
	top         float64
	height      float64
	highlighted bool
}

// Text returns the display line content.
func (h *Handle) Text() string { return h.text }

// Top returns the vertical offset of the line inside the scroll container.
func (h *Handle) Top() float64 { return h.top }

// Height returns the rendered box height of the line.
func (h *Handle) Height() float64 { return h.height }

// Highlighted reports whether the line carries the highlight.
func (h *Handle) Highlighted() bool { return h.highlighted }

// SetHighlighted sets or clears the highlight flag.
func (h *Handle) SetHighlighted(on bool) { h.highlighted = on }

// Store holds the ordered handles produced from one layout result along with
// the cached line height.
type Store struct {
	handles []*Handle

	// boxHeight is the rendered height of one line box.
	boxHeight float64

	// fontLineHeight is the computed line height of the font, used when the
	// first box has no measurable height.
	fontLineHeight float64

	lineHeight float64
}

// New creates an empty store. boxHeight is the rendered height given to each
// line box; fontLineHeight is the fallback when boxes have no height.
func New(boxHeight, fontLineHeight float64) *Store {
	return &Store{
		boxHeight:      boxHeight,
		fontLineHeight: fontLineHeight,
	}
}

// SetBoxHeight changes the height given to line boxes on the next Build.
func (s *Store) SetBoxHeight(h float64) {
	s.boxHeight = h
}

// Build replaces all handles with fresh ones for the given lines and
// recomputes the line height. Previously returned handles are detached.
func (s *Store) Build(lines []string) []*Handle {
	box := s.boxHeight
	if box < 0 {
		box = 0
	}

	handles := make([]*Handle, len(lines))
	for i, line := range lines {
		handles[i] = &Handle{
			text:   line,
			top:    float64(i) * box,
			height: box,
		}
	}
	s.handles = handles
	s.lineHeight = s.computeLineHeight()
	return handles
}

func (s *Store) computeLineHeight() float64 {
	if len(s.handles) == 0 {
		return 0
	}
	if h := s.handles[0].height; h > 0 {
		return h
	}
	if s.fontLineHeight > 0 {
		return s.fontLineHeight
	}
	return 0
}

// LineHeight returns the line height cached by the last Build.
func (s *Store) LineHeight() float64 {
	return s.lineHeight
}

// Len returns the number of handles.
func (s *Store) Len() int {
	return len(s.handles)
}

// Handle returns the handle at index i, or nil when out of range.
func (s *Store) Handle(i int) *Handle {
	if i < 0 || i >= len(s.handles) {
		return nil
	}
	return s.handles[i]
}

// Handles returns the current handles in reading order.
func (s *Store) Handles() []*Handle {
	return s.handles
}

// LineTop returns the vertical offset of line i.
func (s *Store) LineTop(i int) (float64, bool) {
	h := s.Handle(i)
	if h == nil {
		return 0, false
	}
	return h.top, true
}

// ContentHeight returns the total height of all line boxes.
func (s *Store) ContentHeight() float64 {
	if len(s.handles) == 0 {
		return 0
	}
	last := s.handles[len(s.handles)-1]
	return last.top + last.height
}

// HighlightedCount returns how many handles are highlighted.
func (s *Store) HighlightedCount() int {
	n := 0
	for _, h := range s.handles {
		if h.highlighted {
			n++
		}
	}
	return n
}
