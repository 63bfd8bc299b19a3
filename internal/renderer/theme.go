package renderer

import (
	"fmt"

	"github.com/RichardViskovic/v-reader/internal/renderer/core"
)

// Theme holds the styles the renderer paints with.
type Theme struct {
	Text        core.Style
	Highlight   core.Style
	Placeholder core.Style
	Status      core.Style
	Panel       core.Style
	PanelBorder core.Style
	PanelTitle  core.Style
	Prompt      core.Style
}

// ThemeColors is the configurable part of a theme.
type ThemeColors struct {
	HighlightFG core.Color
	HighlightBG core.Color
	StatusFG    core.Color
	StatusBG    core.Color
	PanelBG     core.Color
}

// DefaultThemeColors returns the built-in palette.
func DefaultThemeColors() ThemeColors {
	return ThemeColors{
		HighlightFG: core.ColorBlack,
		HighlightBG: core.ColorFromRGB(0xff, 0xd8, 0x66),
		StatusFG:    core.ColorWhite,
		StatusBG:    core.ColorFromRGB(0x3a, 0x3a, 0x3a),
		PanelBG:     core.ColorFromRGB(0x1e, 0x1e, 0x2e),
	}
}

// DefaultTheme returns the theme built from the default palette.
func DefaultTheme() Theme {
	return NewTheme(DefaultThemeColors())
}

// NewTheme derives a full theme from a palette.
func NewTheme(c ThemeColors) Theme {
	panelFG := c.StatusFG
	return Theme{
		Text:        core.DefaultStyle(),
		Highlight:   core.DefaultStyle().WithForeground(c.HighlightFG).WithBackground(c.HighlightBG),
		Placeholder: core.DefaultStyle().Dim(),
		Status:      core.DefaultStyle().WithForeground(c.StatusFG).WithBackground(c.StatusBG),
		Panel:       core.DefaultStyle().WithForeground(panelFG).WithBackground(c.PanelBG),
		PanelBorder: core.DefaultStyle().
			WithForeground(c.PanelBG.Blend(c.HighlightBG, 0.4)).
			WithBackground(c.PanelBG),
		PanelTitle: core.DefaultStyle().Bold().WithForeground(c.HighlightBG).WithBackground(c.PanelBG),
		Prompt:     core.DefaultStyle().WithForeground(panelFG).WithBackground(c.PanelBG.Blend(c.StatusBG, 0.5)),
	}
}

// HexColors is a palette in "#rrggbb" notation. Empty fields keep the
// default color.
type HexColors struct {
	HighlightFG string
	HighlightBG string
	StatusFG    string
	StatusBG    string
	PanelBG     string
}

// ParseThemeColors resolves a hex palette over the defaults.
func ParseThemeColors(h HexColors) (ThemeColors, error) {
	c := DefaultThemeColors()
	fields := []struct {
		name string
		hex  string
		dst  *core.Color
	}{
		{"highlight_fg", h.HighlightFG, &c.HighlightFG},
		{"highlight_bg", h.HighlightBG, &c.HighlightBG},
		{"status_fg", h.StatusFG, &c.StatusFG},
		{"status_bg", h.StatusBG, &c.StatusBG},
		{"panel_bg", h.PanelBG, &c.PanelBG},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		color, err := core.ColorFromHex(f.hex)
		if err != nil {
			return ThemeColors{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = color
	}
	return c, nil
}
