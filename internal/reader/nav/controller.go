// Package nav translates reader commands into highlight changes.
package nav

import "github.com/RichardViskovic/v-reader/internal/reader/viewport"

// Command is a discrete navigation input.
type Command int

const (
	CommandNone Command = iota
	CommandToggle
	CommandMoveUp
	CommandMoveDown
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandToggle:
		return "toggle"
	case CommandMoveUp:
		return "move-up"
	case CommandMoveDown:
		return "move-down"
	default:
		return "none"
	}
}

// Controller applies commands to a viewport state. Scrolling follows from
// the state's revealer, which fires on every highlight change.
type Controller struct {
	view *viewport.State
}

// New creates a controller over a viewport state.
func New(view *viewport.State) *Controller {
	return &Controller{view: view}
}

// Execute runs a command and reports whether the highlight changed.
func (c *Controller) Execute(cmd Command) bool {
	switch cmd {
	case CommandToggle:
		return c.Toggle()
	case CommandMoveUp:
		return c.Move(-1)
	case CommandMoveDown:
		return c.Move(1)
	default:
		return false
	}
}

// Toggle highlights the top visible line when nothing is highlighted and
// clears the highlight otherwise.
func (c *Controller) Toggle() bool {
	if c.view.LineCount() == 0 {
		return false
	}
	if _, ok := c.view.HighlightIndex(); ok {
		c.view.ClearHighlight()
		return true
	}
	c.view.SetHighlight(c.view.TopVisibleIndex())
	return true
}

// Move shifts the highlight by delta lines, clamped to the document. The
// first press with no highlight selects the top visible line and ignores
// delta. Moving against a boundary re-highlights the same line.
func (c *Controller) Move(delta int) bool {
	count := c.view.LineCount()
	if count == 0 {
		return false
	}

	current, ok := c.view.HighlightIndex()
	if !ok {
		c.view.SetHighlight(c.view.TopVisibleIndex())
		return true
	}

	var next int
	switch {
	case delta >= count:
		next = count - 1
	case delta <= -count:
		next = 0
	default:
		next = clamp(current+delta, 0, count-1)
	}
	c.view.SetHighlight(next)
	return next != current
}

// MoveUp moves the highlight one line up.
func (c *Controller) MoveUp() bool { return c.Move(-1) }

// MoveDown moves the highlight one line down.
func (c *Controller) MoveDown() bool { return c.Move(1) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
