// Package renderer provides the display layer for the reader.
//
// The renderer is responsible for:
//   - Painting the wrapped lines at the current scroll offset
//   - Marking the highlighted line
//   - The status line, side panel and open-file prompt
//   - The scroll surface the animator writes to
//   - Measuring the text area for layout
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│      Renderer      │      Surface       │
//	├─────────────────────────────────────────┤
//	│   core (Cell, Style, Color, widths)     │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	surface := renderer.NewSurface(0)
//	r := renderer.New(b, renderer.DefaultOptions())
//	r.Render(doc, renderer.Chrome{})
package renderer
