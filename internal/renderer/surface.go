package renderer

import "math"

// ContentHeighter reports the total height of the scrollable content.
type ContentHeighter interface {
	ContentHeight() float64
}

// Surface is the scroll container of the text area. Offsets written to it
// are clamped to [0, max(0, contentHeight-viewHeight)], the way a scrolling
// element clamps its scroll position.
type Surface struct {
	offset     float64
	viewHeight float64
	content    ContentHeighter
}

// NewSurface creates a surface showing viewHeight rows.
func NewSurface(viewHeight int) *Surface {
	return &Surface{viewHeight: float64(max(0, viewHeight))}
}

// BindContent sets the content whose height bounds the offset.
func (s *Surface) BindContent(c ContentHeighter) {
	s.content = c
}

// SetViewHeight updates the number of visible rows. The current offset is
// left alone; the next write is clamped against the new height.
func (s *Surface) SetViewHeight(rows int) {
	s.viewHeight = float64(max(0, rows))
}

// ViewHeight returns the number of visible rows.
func (s *Surface) ViewHeight() int {
	return int(s.viewHeight)
}

// ScrollOffset returns the current offset in rows.
func (s *Surface) ScrollOffset() float64 {
	return s.offset
}

// SetScrollOffset moves the surface, clamped to the scrollable range.
func (s *Surface) SetScrollOffset(offset float64) {
	if math.IsNaN(offset) {
		return
	}
	s.offset = min(max(offset, 0), s.MaxOffset())
}

// MaxOffset returns the largest offset the surface accepts.
func (s *Surface) MaxOffset() float64 {
	if s.content == nil {
		return 0
	}
	return max(0, s.content.ContentHeight()-s.viewHeight)
}
