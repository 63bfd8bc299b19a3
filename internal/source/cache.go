package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CacheKey names the record holding the last loaded text.
const CacheKey = "vbookreader-text"

// Errors returned by the cache.
var (
	// ErrCacheMiss indicates there is no usable cached text.
	ErrCacheMiss = errors.New("no cached text")

	// ErrCacheCorrupt indicates the cache record could not be parsed.
	ErrCacheCorrupt = errors.New("cache record is corrupt")
)

// Entry is one cached text.
type Entry struct {
	ID      string
	Name    string
	Text    string
	SavedAt time.Time
}

// Cache keeps the last loaded text on disk as a JSON record.
type Cache struct {
	dir string
	now func() time.Time
}

// NewCache creates a cache storing its record in dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir, now: time.Now}
}

// DefaultCacheDir returns the per-user cache directory for the reader.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vreader"), nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the file holding the record.
func (c *Cache) Path() string {
	return filepath.Join(c.dir, CacheKey+".json")
}

// Save replaces the cached record with text.
func (c *Cache) Save(name, text string) (Entry, error) {
	entry := Entry{
		ID:      uuid.NewString(),
		Name:    name,
		Text:    text,
		SavedAt: c.now().UTC(),
	}

	record := "{}"
	fields := []struct {
		path  string
		value any
	}{
		{"id", entry.ID},
		{"name", entry.Name},
		{"text", entry.Text},
		{"savedAt", entry.SavedAt.Format(time.RFC3339Nano)},
	}
	for _, f := range fields {
		var err error
		record, err = sjson.Set(record, f.path, f.value)
		if err != nil {
			return Entry{}, fmt.Errorf("encoding cache record: %w", err)
		}
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("creating cache dir: %w", err)
	}

	// Write then rename so a crash never leaves a half-written record.
	tmp, err := os.CreateTemp(c.dir, CacheKey+"-*.tmp")
	if err != nil {
		return Entry{}, fmt.Errorf("writing cache: %w", err)
	}
	if _, err := tmp.WriteString(record); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Entry{}, fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return Entry{}, fmt.Errorf("writing cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path()); err != nil {
		os.Remove(tmp.Name())
		return Entry{}, fmt.Errorf("writing cache: %w", err)
	}

	return entry, nil
}

// Load returns the cached record. An absent record or one holding empty
// text is a miss.
func (c *Cache) Load() (Entry, error) {
	data, err := os.ReadFile(c.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, ErrCacheMiss
		}
		return Entry{}, fmt.Errorf("reading cache: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return Entry{}, ErrCacheCorrupt
	}
	record := gjson.ParseBytes(data)

	text := record.Get("text")
	if !text.Exists() || text.Type != gjson.String {
		return Entry{}, ErrCacheCorrupt
	}
	if text.String() == "" {
		return Entry{}, ErrCacheMiss
	}

	entry := Entry{
		ID:   record.Get("id").String(),
		Name: record.Get("name").String(),
		Text: text.String(),
	}
	if saved := record.Get("savedAt"); saved.Exists() {
		if t, err := time.Parse(time.RFC3339Nano, saved.String()); err == nil {
			entry.SavedAt = t
		}
	}
	return entry, nil
}

// Clear removes the cached record.
func (c *Cache) Clear() error {
	err := os.Remove(c.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
