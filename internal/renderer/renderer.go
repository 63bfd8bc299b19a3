package renderer

import (
	"fmt"
	"math"

	"github.com/RichardViskovic/v-reader/internal/reader"
	"github.com/RichardViskovic/v-reader/internal/renderer/backend"
	"github.com/RichardViskovic/v-reader/internal/renderer/core"
)

// EmptyMessage is shown in the text area while no text is loaded.
const EmptyMessage = "Load a text file to start reading."

// PromptLabel precedes the path typed into the open-file prompt.
const PromptLabel = "Open: "

// Document is the reader state as seen by the renderer.
type Document interface {
	Lines() []reader.LineView
	ScrollOffset() float64
	ContentHeight() float64
	HighlightIndex() (int, bool)
	Empty() bool
}

// Chrome is the state around the text: status, side panel and prompt.
type Chrome struct {
	FileName string
	Status   string

	PanelOpen   bool
	Prompting   bool
	PromptInput string
}

// Options configures the renderer.
type Options struct {
	PaddingLeft  int // Columns left of the text
	PaddingRight int // Columns right of the text
	PanelWidth   int // Width of the side panel including its border
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		PaddingLeft:  2,
		PaddingRight: 2,
		PanelWidth:   34,
	}
}

var panelHelp = []string{
	"Space   toggle highlight",
	"Up/k    previous line",
	"Down/j  next line",
	"o       open a file",
	"Tab/m   close this panel",
	"q       quit",
}

// Renderer paints a Document and its Chrome onto a backend. The bottom row
// is the status line; every row above it belongs to the text area.
type Renderer struct {
	backend backend.Backend
	opts    Options
	theme   Theme

	frameCount uint64
}

// New creates a renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		opts:    opts,
		theme:   DefaultTheme(),
	}
}

// SetTheme replaces the theme.
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
}

// Theme returns the current theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// TextRows returns the number of rows available to text for a screen of the
// given height.
func TextRows(height int) int {
	return max(0, height-1)
}

// Size returns the current screen dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.backend.Size()
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}

// Render performs a full render cycle.
func (r *Renderer) Render(doc Document, ui Chrome) {
	width, height := r.backend.Size()
	textRows := TextRows(height)

	r.backend.Clear()

	if doc == nil || doc.Empty() {
		r.renderEmpty(textRows, width)
	} else {
		r.renderLines(doc, textRows, width)
	}

	if height > 0 {
		r.renderStatus(doc, ui, height-1, textRows, width)
	}

	cursor := false
	if ui.PanelOpen {
		cursor = r.renderPanel(ui, textRows, width)
	}
	if !cursor {
		r.backend.HideCursor()
	}

	r.backend.Show()
	r.frameCount++
}

func (r *Renderer) renderEmpty(textRows, width int) {
	if textRows == 0 {
		return
	}
	r.drawText(r.opts.PaddingLeft, 0, width-r.opts.PaddingRight, EmptyMessage, r.theme.Placeholder)
}

func (r *Renderer) renderLines(doc Document, textRows, width int) {
	shift := int(math.Floor(doc.ScrollOffset()))

	for _, line := range doc.Lines() {
		top := int(math.Floor(line.Top)) - shift
		rows := max(1, int(math.Ceil(line.Height)))
		if top+rows <= 0 {
			continue
		}
		if top >= textRows {
			break
		}

		style := r.theme.Text
		if line.Highlighted {
			style = r.theme.Highlight
			fill := core.NewStyledCell(' ', style)
			first := max(0, top)
			last := min(textRows, top+rows)
			r.backend.Fill(core.RectFromSize(first, 0, last-first, width), fill)
		}

		if top >= 0 {
			r.drawText(r.opts.PaddingLeft, top, width-r.opts.PaddingRight, line.Text, style)
		}
	}
}

func (r *Renderer) renderStatus(doc Document, ui Chrome, row, textRows, width int) {
	style := r.theme.Status
	r.backend.Fill(core.RectFromSize(row, 0, 1, width), core.NewStyledCell(' ', style))

	left := ui.Status
	if left == "" {
		left = ui.FileName
	}
	if left == "" {
		left = "v-reader"
	}

	right := position(doc, textRows)
	rightX := width - core.StringWidth(right) - 1
	r.drawText(1, row, max(1, rightX-1), left, style)
	if rightX > 0 {
		r.drawText(rightX, row, width, right, style)
	}
}

// position formats the highlighted line and the scroll position.
func position(doc Document, textRows int) string {
	if doc == nil || doc.Empty() {
		return ""
	}

	count := len(doc.Lines())
	line := "-"
	if idx, ok := doc.HighlightIndex(); ok {
		line = fmt.Sprint(idx + 1)
	}

	content := doc.ContentHeight()
	view := float64(textRows)
	offset := doc.ScrollOffset()

	var where string
	switch {
	case content <= view:
		where = "All"
	case offset <= 0:
		where = "Top"
	case offset >= content-view:
		where = "Bot"
	default:
		where = fmt.Sprintf("%d%%", int(offset*100/(content-view)))
	}

	return fmt.Sprintf("%s/%d  %s", line, count, where)
}

// renderPanel draws the side panel over the right edge of the text area.
// It reports whether the cursor was placed in the prompt.
func (r *Renderer) renderPanel(ui Chrome, textRows, width int) bool {
	pw := min(r.opts.PanelWidth, width)
	if pw < 8 || textRows == 0 {
		return false
	}
	x0 := width - pw
	right := width - 1

	r.backend.Fill(core.RectFromSize(0, x0, textRows, pw), core.NewStyledCell(' ', r.theme.Panel))
	for y := 0; y < textRows; y++ {
		r.backend.SetCell(x0, y, core.NewStyledCell('│', r.theme.PanelBorder))
	}

	x := x0 + 2
	y := 0
	put := func(s string, style core.Style) {
		if y < textRows {
			r.drawText(x, y, right, s, style)
		}
		y++
	}

	put("v-reader", r.theme.PanelTitle)
	y++
	for _, h := range panelHelp {
		put(h, r.theme.Panel)
	}
	y++
	put("File", r.theme.PanelTitle)
	if ui.FileName != "" {
		put(ui.FileName, r.theme.Panel)
	} else {
		put("(none)", r.theme.Panel)
	}
	if ui.Status != "" {
		y++
		put(ui.Status, r.theme.Panel)
	}

	if !ui.Prompting {
		return false
	}

	row := textRows - 1
	r.backend.Fill(core.RectFromSize(row, x0+1, 1, pw-1), core.NewStyledCell(' ', r.theme.Prompt))
	labelEnd := r.drawText(x, row, right, PromptLabel, r.theme.Prompt)

	// Keep the tail of the input visible, with room for the cursor.
	input := tail(ui.PromptInput, right-labelEnd-1)
	cursorX := r.drawText(labelEnd, row, right, input, r.theme.Prompt)
	if cursorX >= right {
		return false
	}
	r.backend.ShowCursor(cursorX, row)
	return true
}

// drawText paints s starting at column x, stopping before maxX. It returns
// the column after the last cell painted.
func (r *Renderer) drawText(x, y, maxX int, s string, style core.Style) int {
	for _, ch := range s {
		w := core.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		r.backend.SetCell(x, y, core.Cell{Rune: ch, Width: w, Style: style})
		x += w
	}
	return x
}

// tail returns the longest suffix of s that fits in width columns.
func tail(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		w := core.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return string(runes[start:])
}
