package renderer

import (
	"github.com/RichardViskovic/v-reader/internal/reader/metrics"
	"github.com/RichardViskovic/v-reader/internal/renderer/backend"
)

// TextArea describes the text area of the screen as a layout container:
// the full terminal width with configurable horizontal padding.
type TextArea struct {
	backend      backend.Backend
	paddingLeft  int
	paddingRight int
	font         metrics.Font
}

// NewTextArea creates a container over the backend's screen.
func NewTextArea(b backend.Backend, paddingLeft, paddingRight int, font metrics.Font) *TextArea {
	return &TextArea{
		backend:      b,
		paddingLeft:  max(0, paddingLeft),
		paddingRight: max(0, paddingRight),
		font:         font,
	}
}

// Style implements metrics.Container.
func (a *TextArea) Style() metrics.Style {
	width, _ := a.backend.Size()
	return metrics.Style{
		ContentWidth: float64(width),
		PaddingLeft:  float64(a.paddingLeft),
		PaddingRight: float64(a.paddingRight),
		Font:         a.font,
	}
}

// PaddingLeft returns the left padding in columns.
func (a *TextArea) PaddingLeft() int { return a.paddingLeft }

// Probe returns a metrics source measuring this area in terminal cells.
func (a *TextArea) Probe() *metrics.Probe {
	return metrics.NewProbe(a, metrics.CellGlyphs{})
}
