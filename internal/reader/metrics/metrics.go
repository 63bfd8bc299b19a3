// Package metrics measures the rendering surface that text is laid out on.
//
// A measurement has two parts: the width available for text inside the
// container and the width of one reference glyph under the container's font.
// Both are expressed in the surface's own units (terminal columns for the
// tcell backend). Measurement never fails; unavailable values fall back to
// conservative defaults so that layout always has a usable budget.
package metrics

import (
	"math"

	"github.com/rivo/uniseg"
)

const (
	// ReferenceGlyph is the glyph whose width stands in for "one character".
	ReferenceGlyph = "0"

	// FallbackCharWidth is used when neither the glyph nor the container
	// can be measured.
	FallbackCharWidth = 8

	// fallbackGlyphsPerLine derives a glyph width from the available width
	// when the glyph itself cannot be measured.
	fallbackGlyphsPerLine = 50
)

// Font describes the resolved font of a container.
type Font struct {
	Size   float64
	Family string
	Weight string
}

// Style is the subset of a container's computed style that affects layout.
type Style struct {
	ContentWidth float64
	PaddingLeft  float64
	PaddingRight float64
	Font         Font
}

// Measurement is the result of probing a container.
type Measurement struct {
	AvailableWidth     float64
	ReferenceCharWidth float64
}

// Budget returns the number of characters that fit on one display line,
// never less than 1.
func (m Measurement) Budget() int {
	if m.ReferenceCharWidth <= 0 || m.AvailableWidth <= 0 {
		return 1
	}
	n := math.Floor(m.AvailableWidth / m.ReferenceCharWidth)
	if n < 1 || math.IsNaN(n) {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Source provides measurements of the current rendering surface.
type Source interface {
	Measure() Measurement
}

// Container exposes the computed style of the element text is laid out in.
type Container interface {
	Style() Style
}

// GlyphMeasurer reports the rendered width of a glyph under a font.
// A non-positive result means the glyph could not be measured.
type GlyphMeasurer interface {
	GlyphWidth(glyph string, font Font) float64
}

// Probe measures a container with a glyph measurer.
type Probe struct {
	container Container
	glyphs    GlyphMeasurer
}

// NewProbe creates a probe for the given container.
func NewProbe(container Container, glyphs GlyphMeasurer) *Probe {
	return &Probe{container: container, glyphs: glyphs}
}

// Measure implements Source.
func (p *Probe) Measure() Measurement {
	var style Style
	if p.container != nil {
		style = p.container.Style()
	}
	return MeasureStyle(style, p.glyphs)
}

// MeasureStyle measures a container style directly.
func MeasureStyle(style Style, glyphs GlyphMeasurer) Measurement {
	available := AvailableWidth(style)

	var glyph float64
	if glyphs != nil {
		glyph = glyphs.GlyphWidth(ReferenceGlyph, style.Font)
	}

	return Measurement{
		AvailableWidth:     available,
		ReferenceCharWidth: ResolveCharWidth(glyph, available),
	}
}

// AvailableWidth returns the content width minus horizontal padding.
// An unmeasured container (zero, negative or NaN width) yields 0.
func AvailableWidth(style Style) float64 {
	if !(style.ContentWidth > 0) {
		return 0
	}
	w := style.ContentWidth - style.PaddingLeft - style.PaddingRight
	if !(w > 0) {
		return 0
	}
	return w
}

// ResolveCharWidth applies the fallback chain for the reference glyph width.
func ResolveCharWidth(measured, available float64) float64 {
	if measured > 0 && !math.IsInf(measured, 0) {
		return measured
	}
	if derived := available / fallbackGlyphsPerLine; derived > 0 {
		return derived
	}
	return FallbackCharWidth
}

// CellGlyphs measures glyphs in terminal cells. Terminals render every glyph
// with one fixed font, so only the glyph's East Asian width matters.
type CellGlyphs struct{}

// GlyphWidth implements GlyphMeasurer.
func (CellGlyphs) GlyphWidth(glyph string, _ Font) float64 {
	return float64(uniseg.StringWidth(glyph))
}

// Fixed is a Source that always returns the same measurement.
type Fixed Measurement

// Measure implements Source.
func (f Fixed) Measure() Measurement {
	return Measurement(f)
}

// FixedBudget returns a Source whose measurement yields the given budget
// with one-unit glyphs.
func FixedBudget(budget int) Fixed {
	return Fixed{AvailableWidth: float64(budget), ReferenceCharWidth: 1}
}
