package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestWatcher_ReportsWrite(t *testing.T) {
	path := writeFile(t, "book.txt", []byte("one"))

	w, err := NewWatcher(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("two"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := waitChange(t, w)
	abs, _ := filepath.Abs(path)
	if c.Path != abs {
		t.Errorf("expected path %q, got %q", abs, c.Path)
	}
	if c.Removed {
		t.Error("expected Removed = false")
	}
}

func TestWatcher_ReportsRemove(t *testing.T) {
	path := writeFile(t, "book.txt", []byte("one"))

	w, err := NewWatcher(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if c := waitChange(t, w); !c.Removed {
		t.Error("expected Removed = true")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	path := writeFile(t, "book.txt", []byte("one"))
	sibling := filepath.Join(filepath.Dir(path), "other.txt")

	w, err := NewWatcher(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := os.WriteFile(sibling, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case c := <-w.Changes():
		t.Errorf("unexpected change %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_WatchMissing(t *testing.T) {
	w, err := NewWatcher(0)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error watching a missing file")
	}
	if w.Path() != "" {
		t.Errorf("expected no path, got %q", w.Path())
	}
}

func TestWatcher_Close(t *testing.T) {
	path := writeFile(t, "book.txt", []byte("one"))

	w, err := NewWatcher(0)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch(path); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Error("expected changes channel to be closed")
	}
}
