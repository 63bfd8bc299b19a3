package source

import (
	"errors"
	"os"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c := NewCache(t.TempDir())
	c.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestCache_SaveLoad(t *testing.T) {
	c := newTestCache(t)

	saved, err := c.Save("notes.txt", "line one\n\"quoted\" line two")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("expected an entry id")
	}

	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ID != saved.ID {
		t.Errorf("expected id %q, got %q", saved.ID, got.ID)
	}
	if got.Name != "notes.txt" {
		t.Errorf("expected name 'notes.txt', got %q", got.Name)
	}
	if got.Text != "line one\n\"quoted\" line two" {
		t.Errorf("unexpected text %q", got.Text)
	}
	if !got.SavedAt.Equal(saved.SavedAt) {
		t.Errorf("expected saved time %v, got %v", saved.SavedAt, got.SavedAt)
	}
}

func TestCache_SaveReplaces(t *testing.T) {
	c := newTestCache(t)

	if _, err := c.Save("a.txt", "first"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := c.Save("b.txt", "second"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "b.txt" || got.Text != "second" {
		t.Errorf("expected the second entry, got %+v", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c := newTestCache(t)

	if _, err := c.Load(); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCache_EmptyTextIsMiss(t *testing.T) {
	c := newTestCache(t)

	if _, err := c.Save("empty.txt", ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := c.Load(); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss for empty text, got %v", err)
	}
}

func TestCache_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{text:"},
		{"no text", `{"name":"a.txt"}`},
		{"text not string", `{"text":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache(t)
			if err := os.WriteFile(c.Path(), []byte(tt.data), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := c.Load(); !errors.Is(err, ErrCacheCorrupt) {
				t.Errorf("expected ErrCacheCorrupt, got %v", err)
			}
		})
	}
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t)

	if err := c.Clear(); err != nil {
		t.Errorf("Clear() on empty cache error = %v", err)
	}
	if _, err := c.Save("a.txt", "text"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := c.Load(); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after Clear, got %v", err)
	}
}
