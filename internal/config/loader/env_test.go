package loader

import (
	"strings"
	"testing"
	"time"
)

func getByPath(data map[string]any, path string) (any, bool) {
	section, setting, _ := strings.Cut(path, ".")
	m, ok := data[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[setting]
	return v, ok
}

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader("VREADER_")
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"VREADER_LOG=debug",
		"VREADER_WATCH=true",
		"VREADER_DURATION=300ms",
		"VREADER_READER_PADDING_LEFT=1",
		"HOME=/home/reader",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "log.level"); !ok || val != "debug" {
		t.Errorf("log.level = %v, want 'debug'", val)
	}
	if val, ok := getByPath(config, "reader.watch"); !ok || val != true {
		t.Errorf("reader.watch = %v, want true", val)
	}
	if val, ok := getByPath(config, "scroll.duration"); !ok || val != 300*time.Millisecond {
		t.Errorf("scroll.duration = %v (%T), want 300ms", val, val)
	}
	if val, ok := getByPath(config, "reader.padding_left"); !ok || val != int64(1) {
		t.Errorf("reader.padding_left = %v (%T), want 1", val, val)
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_RealEnvironment(t *testing.T) {
	t.Setenv("VREADER_THEME_PANEL_BG", "#101010")

	config, err := NewEnvLoader("VREADER_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, ok := getByPath(config, "theme.panel_bg"); !ok || val != "#101010" {
		t.Errorf("theme.panel_bg = %v, want '#101010'", val)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := newTestEnvLoader("VREADER_PAD=3")
	l.AddMapping("VREADER_PAD", "reader.padding_right")

	config, _ := l.Load()
	if val, ok := getByPath(config, "reader.padding_right"); !ok || val != int64(3) {
		t.Errorf("reader.padding_right = %v, want 3", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("VREADER_")

	tests := []struct {
		env  string
		want string
	}{
		{"VREADER_READER_PADDING_LEFT", "reader.padding_left"},
		{"VREADER_FONT_SIZE", "font.size"},
		{"VREADER_SCROLL_FRAME_INTERVAL", "scroll.frame_interval"},
		{"VREADER_CONFIG", ""},
		{"VREADER_", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"", ""},
		{"1", int64(1)},
		{"0", int64(0)},
		{"42", int64(42)},
		{"true", true},
		{"Off", false},
		{"1.5", 1.5},
		{"650ms", 650 * time.Millisecond},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
		}
	}

	arr, ok := parseValue(`["a","b"]`).([]any)
	if !ok || len(arr) != 2 {
		t.Errorf("expected JSON array, got %v", arr)
	}
}
