package config

import (
	"errors"
	"testing"
	"time"
)

func TestConfig_Sections(t *testing.T) {
	c := loadConfig(t)

	reader := c.Reader()
	if reader.PaddingLeft != 2 || reader.PaddingRight != 2 {
		t.Errorf("padding = %d/%d, want 2/2", reader.PaddingLeft, reader.PaddingRight)
	}
	if reader.RowsPerLine != 1 {
		t.Errorf("RowsPerLine = %v, want 1", reader.RowsPerLine)
	}
	if reader.Watch {
		t.Error("Watch = true, want false")
	}

	scroll := c.Scroll()
	if scroll.Duration != 650*time.Millisecond {
		t.Errorf("Duration = %v, want 650ms", scroll.Duration)
	}
	if scroll.LeadLines != 2 {
		t.Errorf("LeadLines = %v, want 2", scroll.LeadLines)
	}
	if scroll.FrameInterval != 16*time.Millisecond {
		t.Errorf("FrameInterval = %v, want 16ms", scroll.FrameInterval)
	}

	if theme := c.Theme(); theme.HighlightBG != "#ffd866" {
		t.Errorf("HighlightBG = %q, want '#ffd866'", theme.HighlightBG)
	}
	if cache := c.Cache(); !cache.Enabled || cache.Dir != "" {
		t.Errorf("unexpected cache config %+v", cache)
	}
	if log := c.Log(); log.Level != "info" || log.File != "" {
		t.Errorf("unexpected log config %+v", log)
	}
	if font := c.Font(); font.Family != "monospace" || font.Size != 16 {
		t.Errorf("unexpected font config %+v", font)
	}

	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestConfig_SectionsFromFile(t *testing.T) {
	path := writeConfig(t, `
[reader]
rows_per_line = 2
padding_left = 0

[scroll]
duration = 200
lead_lines = 0.5

[theme]
panel_bg = "#000000"
`)
	c := loadConfig(t, WithConfigPath(path))

	if r := c.Reader(); r.RowsPerLine != 2 || r.PaddingLeft != 0 {
		t.Errorf("unexpected reader config %+v", r)
	}
	s := c.Scroll()
	if s.Duration != 200*time.Millisecond {
		t.Errorf("integer duration should be milliseconds, got %v", s.Duration)
	}
	if s.LeadLines != 0.5 {
		t.Errorf("LeadLines = %v, want 0.5", s.LeadLines)
	}
	if c.Theme().PanelBG != "#000000" {
		t.Errorf("PanelBG = %q", c.Theme().PanelBG)
	}
}

func TestConfig_TypeMismatchFallsBack(t *testing.T) {
	path := writeConfig(t, `
[reader]
padding_left = "wide"
`)
	c := loadConfig(t, WithConfigPath(path))

	if got := c.Reader().PaddingLeft; got != 2 {
		t.Errorf("PaddingLeft = %d, want default 2", got)
	}
	errs := c.ConfigErrors()
	if _, ok := errs["reader.padding_left"]; !ok {
		t.Errorf("expected a recorded error, got %v", errs)
	}
	if err := c.Validate(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Validate() should report the type error, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		path string
		val  any
	}{
		{"negative padding", "reader.padding_left", int64(-1)},
		{"zero rows", "reader.rows_per_line", int64(0)},
		{"negative lead", "scroll.lead_lines", -1.0},
		{"zero frame interval", "scroll.frame_interval", "0s"},
		{"unknown level", "log.level", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := loadConfig(t)
			if err := c.Set(tt.path, tt.val); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			err := c.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Path != tt.path {
				t.Errorf("expected error for %s, got %v", tt.path, err)
			}
		})
	}
}
