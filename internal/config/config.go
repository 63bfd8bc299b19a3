package config

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/RichardViskovic/v-reader/internal/config/loader"
)

// Config provides unified access to the reader configuration.
// It is safe for concurrent use.
type Config struct {
	mu sync.RWMutex

	// Merged settings from every layer
	settings map[string]any

	// Values set programmatically, applied over every other layer
	overrides map[string]any

	path       string
	loadedFrom string
	envPrefix  string
	fs         loader.FileSystem

	// configErrors stores errors encountered during configuration access.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigPath sets the TOML file to read. An empty path skips the file.
func WithConfigPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithEnvPrefix sets the prefix of the environment variables to read.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithFileSystem sets the file system the TOML file is read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// New creates a new Config holding the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		settings:  defaults(),
		overrides: make(map[string]any),
		path:      DefaultConfigPath(),
		envPrefix: loader.DefaultEnvPrefix,
		fs:        loader.DefaultFS(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DefaultConfigPath returns the per-user configuration file, or "" when the
// user configuration directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vreader", "config.toml")
}

// Load reads the configuration file and the environment over the defaults.
// A missing file is not an error.
func (c *Config) Load(_ context.Context) error {
	c.mu.RLock()
	path, prefix, fsys := c.path, c.envPrefix, c.fs
	overrides := loader.Clone(c.overrides)
	c.mu.RUnlock()

	settings := defaults()

	file, err := loader.NewTOMLLoaderWithFS(fsys, path).Load()
	if err != nil {
		return err
	}
	settings = loader.DeepMerge(settings, file)

	env, err := loader.NewEnvLoader(prefix).Load()
	if err != nil {
		return err
	}
	settings = loader.DeepMerge(settings, env)
	settings = loader.DeepMerge(settings, overrides)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings = settings
	c.loadedFrom = ""
	if file != nil {
		c.loadedFrom = path
	}
	c.configErrors = nil
	return nil
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// LoadedFrom returns the file the last Load read, or "" if none was found.
func (c *Config) LoadedFrom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedFrom
}

// Settings returns a deep copy of the merged settings.
func (c *Config) Settings() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.settings)
}

// Set overrides the value at path. Overrides survive later calls to Load.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := setPath(c.settings, path, value); err != nil {
		return err
	}
	return setPath(c.overrides, path, value)
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.settings, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	i, ok := toInt(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
	return i, nil
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := toBool(v)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float value at the given path.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
	return f, nil
}

// GetDuration returns a duration at the given path. Strings use
// time.ParseDuration syntax; bare integers are milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	d, ok := toDuration(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
	return d, nil
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getFloatOr(path string, defaultValue float64) float64 {
	v, err := c.GetFloat(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		c.recordConfigError(path, err)
		return defaultValue
	}
	return v
}

// recordConfigError stores a type error; missing settings are not errors.
func (c *Config) recordConfigError(path string, err error) {
	if err == ErrSettingNotFound {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	c.configErrors[path] = err
}

// ConfigErrors returns the errors recorded while reading typed sections.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		out[k] = v
	}
	return out
}

// defaults returns the built-in defaults layer.
func defaults() map[string]any {
	return map[string]any{
		"reader": map[string]any{
			"padding_left":  int64(2),
			"padding_right": int64(2),
			"rows_per_line": int64(1),
			"watch":         false,
		},
		"font": map[string]any{
			"size":   int64(16),
			"family": "monospace",
			"weight": "normal",
		},
		"scroll": map[string]any{
			"duration":       "650ms",
			"lead_lines":     int64(2),
			"frame_interval": "16ms",
		},
		"theme": map[string]any{
			"highlight_fg": "#000000",
			"highlight_bg": "#ffd866",
			"status_fg":    "#ffffff",
			"status_bg":    "#3a3a3a",
			"panel_bg":     "#1e1e2e",
		},
		"cache": map[string]any{
			"enabled": true,
			"dir":     "",
		},
		"log": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, skipping empty ones.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case int64:
		if b == 0 || b == 1 {
			return b == 1, true
		}
	}
	return false, false
}

func toDuration(v any) (time.Duration, bool) {
	switch d := v.(type) {
	case time.Duration:
		return d, true
	case string:
		parsed, err := time.ParseDuration(d)
		return parsed, err == nil
	case int64:
		return time.Duration(d) * time.Millisecond, true
	case int:
		return time.Duration(d) * time.Millisecond, true
	}
	return 0, false
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
