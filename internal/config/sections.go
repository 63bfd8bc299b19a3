package config

import (
	"errors"
	"strings"
	"time"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// ReaderConfig provides type-safe access to layout settings.
type ReaderConfig struct {
	// PaddingLeft is the number of columns left of the text.
	PaddingLeft int

	// PaddingRight is the number of columns right of the text.
	PaddingRight int

	// RowsPerLine is the height of one display line in rows.
	RowsPerLine float64

	// Watch reloads the open file when it changes on disk.
	Watch bool
}

// FontConfig describes the font text is measured in.
type FontConfig struct {
	Size   float64
	Family string
	Weight string
}

// ScrollConfig provides type-safe access to scroll animation settings.
type ScrollConfig struct {
	// Duration is the length of one scroll animation.
	Duration time.Duration

	// LeadLines is the number of lines kept above the highlighted line.
	LeadLines float64

	// FrameInterval is the time between animation frames.
	FrameInterval time.Duration
}

// ThemeConfig holds the theme colors as hex strings.
type ThemeConfig struct {
	HighlightFG string
	HighlightBG string
	StatusFG    string
	StatusBG    string
	PanelBG     string
}

// CacheConfig provides type-safe access to last-file cache settings.
type CacheConfig struct {
	// Enabled saves loaded text for the next start.
	Enabled bool

	// Dir is the cache directory. Empty means the user cache directory.
	Dir string
}

// LogConfig provides type-safe access to logging settings.
type LogConfig struct {
	// Level is the minimum level logged ("debug", "info", "warn", "error").
	Level string

	// File receives log output. Empty disables logging.
	File string
}

// Reader returns type-safe access to layout settings.
func (c *Config) Reader() ReaderConfig {
	return ReaderConfig{
		PaddingLeft:  c.getIntOr("reader.padding_left", 2),
		PaddingRight: c.getIntOr("reader.padding_right", 2),
		RowsPerLine:  c.getFloatOr("reader.rows_per_line", 1),
		Watch:        c.getBoolOr("reader.watch", false),
	}
}

// Font returns type-safe access to font settings.
func (c *Config) Font() FontConfig {
	return FontConfig{
		Size:   c.getFloatOr("font.size", 16),
		Family: c.getStringOr("font.family", "monospace"),
		Weight: c.getStringOr("font.weight", "normal"),
	}
}

// Scroll returns type-safe access to scroll animation settings.
func (c *Config) Scroll() ScrollConfig {
	return ScrollConfig{
		Duration:      c.getDurationOr("scroll.duration", 650*time.Millisecond),
		LeadLines:     c.getFloatOr("scroll.lead_lines", 2),
		FrameInterval: c.getDurationOr("scroll.frame_interval", 16*time.Millisecond),
	}
}

// Theme returns the configured theme colors.
func (c *Config) Theme() ThemeConfig {
	return ThemeConfig{
		HighlightFG: c.getStringOr("theme.highlight_fg", ""),
		HighlightBG: c.getStringOr("theme.highlight_bg", ""),
		StatusFG:    c.getStringOr("theme.status_fg", ""),
		StatusBG:    c.getStringOr("theme.status_bg", ""),
		PanelBG:     c.getStringOr("theme.panel_bg", ""),
	}
}

// Cache returns type-safe access to cache settings.
func (c *Config) Cache() CacheConfig {
	return CacheConfig{
		Enabled: c.getBoolOr("cache.enabled", true),
		Dir:     c.getStringOr("cache.dir", ""),
	}
}

// Log returns type-safe access to logging settings.
func (c *Config) Log() LogConfig {
	return LogConfig{
		Level: c.getStringOr("log.level", "info"),
		File:  c.getStringOr("log.file", ""),
	}
}

// Validate reads every section and reports type errors and values outside
// their allowed range.
func (c *Config) Validate() error {
	r := c.Reader()
	s := c.Scroll()
	l := c.Log()
	c.Font()
	c.Theme()
	c.Cache()

	var errs []error
	for _, err := range c.ConfigErrors() {
		errs = append(errs, err)
	}

	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}
	check(r.PaddingLeft >= 0, "reader.padding_left", "must not be negative", r.PaddingLeft)
	check(r.PaddingRight >= 0, "reader.padding_right", "must not be negative", r.PaddingRight)
	check(r.RowsPerLine > 0, "reader.rows_per_line", "must be positive", r.RowsPerLine)
	check(s.Duration >= 0, "scroll.duration", "must not be negative", s.Duration)
	check(s.LeadLines >= 0, "scroll.lead_lines", "must not be negative", s.LeadLines)
	check(s.FrameInterval > 0, "scroll.frame_interval", "must be positive", s.FrameInterval)

	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		check(false, "log.level", "must be one of debug, info, warn, error", l.Level)
	}

	return errors.Join(errs...)
}
