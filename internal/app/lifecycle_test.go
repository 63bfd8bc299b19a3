package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RichardViskovic/v-reader/internal/config"
	"github.com/RichardViskovic/v-reader/internal/source"
)

func TestLoadText_SavesToCache(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	res := app.LoadText("notes.txt", "one\ntwo")
	if res.Lines != 2 {
		t.Errorf("expected 2 lines, got %d", res.Lines)
	}
	if app.Status() != `Saved "notes.txt" for next time.` {
		t.Errorf("unexpected status '%s'", app.Status())
	}

	entry, err := app.cache.Load()
	if err != nil {
		t.Fatalf("cache Load() failed: %v", err)
	}
	if entry.Name != "notes.txt" || entry.Text != "one\ntwo" {
		t.Errorf("unexpected cache entry %+v", entry)
	}
}

func TestLoadText_CacheDisabled(t *testing.T) {
	cfg := config.New(config.WithConfigPath(""))
	_ = cfg.Set("cache.enabled", false)
	app, _ := newTestApp(t, Options{Config: cfg})

	app.LoadText("notes.txt", "text")
	if app.Status() != `Loaded "notes.txt".` {
		t.Errorf("unexpected status '%s'", app.Status())
	}
}

func TestLoadText_SaveFails(t *testing.T) {
	// A regular file where the cache directory should be.
	blocker := writeTextFile(t, "blocker", "")
	app, _ := newTestApp(t, Options{Cache: source.NewCache(filepath.Join(blocker, "cache"))})

	app.LoadText("notes.txt", "one\ntwo")
	if app.Status() != StatusSaveFailed {
		t.Errorf("expected '%s', got '%s'", StatusSaveFailed, app.Status())
	}
	if app.Reader().LineCount() != 2 {
		t.Errorf("text should still be shown, got %d lines", app.Reader().LineCount())
	}
}

func TestLoadText_ResetsReading(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	app.LoadText("a.txt", numbered(30))
	app.Reader().Toggle()
	for i := 0; i < 15; i++ {
		app.Reader().MoveDown()
	}
	settle(app)

	app.LoadText("b.txt", numbered(5))
	if _, ok := app.Reader().HighlightIndex(); ok {
		t.Error("expected no highlight after loading")
	}
	if off := app.Reader().ScrollOffset(); off != 0 {
		t.Errorf("expected offset 0 after loading, got %v", off)
	}
}

func TestOpenFile(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	path := writeTextFile(t, "book.txt", "first\nsecond\nthird")

	if err := app.OpenFile(path); err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	if app.Document().Name != "book.txt" {
		t.Errorf("expected name 'book.txt', got '%s'", app.Document().Name)
	}
	if app.Reader().LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", app.Reader().LineCount())
	}
	if app.Status() != `Saved "book.txt" for next time.` {
		t.Errorf("unexpected status '%s'", app.Status())
	}
}

func TestOpenFile_Missing(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.LoadText("kept.txt", "kept")

	missing := filepath.Join(t.TempDir(), "missing.txt")
	err := app.OpenFile(missing)

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "open" {
		t.Fatalf("expected open OperationError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
	if app.Status() != StatusReadFailed {
		t.Errorf("expected '%s', got '%s'", StatusReadFailed, app.Status())
	}
	if app.Reader().RawText() != "kept" {
		t.Errorf("current text should be kept, got %q", app.Reader().RawText())
	}
}

func TestLoadCached(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	if _, err := app.cache.Save("last.txt", "from before"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if !app.LoadCached() {
		t.Fatal("expected cached text to load")
	}
	if app.Reader().RawText() != "from before" {
		t.Errorf("unexpected text %q", app.Reader().RawText())
	}
	if app.Document().Name != "last.txt" {
		t.Errorf("expected name 'last.txt', got '%s'", app.Document().Name)
	}
	if app.Status() != StatusLoadedFromCache {
		t.Errorf("expected '%s', got '%s'", StatusLoadedFromCache, app.Status())
	}
}

func TestLoadCached_Miss(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	if app.LoadCached() {
		t.Error("expected no cached text")
	}
	if app.Status() != "" {
		t.Errorf("a miss should not set a status, got '%s'", app.Status())
	}
	if !app.Reader().Empty() {
		t.Error("expected empty reader")
	}
}

func TestLoadCached_Corrupt(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	if err := os.WriteFile(app.cache.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if app.LoadCached() {
		t.Error("expected corrupt cache not to load")
	}
	if app.Status() != StatusCacheUnusable {
		t.Errorf("expected '%s', got '%s'", StatusCacheUnusable, app.Status())
	}
}

func TestLoadCached_Unavailable(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.cache = nil
	app.cacheErr = errors.New("no cache dir")

	if app.LoadCached() {
		t.Error("expected nothing to load")
	}
	if app.Status() != StatusCacheUnusable {
		t.Errorf("expected '%s', got '%s'", StatusCacheUnusable, app.Status())
	}
}

func TestHandleFileChange_Reloads(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	path := writeTextFile(t, "book.txt", numbered(30))
	if err := app.OpenFile(path); err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	app.surface.SetScrollOffset(6)

	if err := os.WriteFile(path, []byte(numbered(40)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	app.handleFileChange(source.Change{Path: app.Document().Path})

	if app.Reader().LineCount() != 40 {
		t.Errorf("expected 40 lines after reload, got %d", app.Reader().LineCount())
	}
	if off := app.Reader().ScrollOffset(); off != 6 {
		t.Errorf("expected offset 6 to be kept, got %v", off)
	}
	if app.Status() != `Reloaded "book.txt".` {
		t.Errorf("unexpected status '%s'", app.Status())
	}
}

func TestHandleFileChange_IgnoresOtherFiles(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	app.LoadText("a.txt", "text")
	status := app.Status()

	app.handleFileChange(source.Change{Path: "/elsewhere/b.txt"})
	if app.Status() != status {
		t.Errorf("status should not change, got '%s'", app.Status())
	}
}

func TestHandleFileChange_Removed(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	path := writeTextFile(t, "book.txt", "text")
	_ = app.OpenFile(path)

	app.handleFileChange(source.Change{Path: app.Document().Path, Removed: true})
	if app.Status() != `"book.txt" was removed from disk.` {
		t.Errorf("unexpected status '%s'", app.Status())
	}
	if app.Reader().RawText() != "text" {
		t.Error("text should be kept when the file disappears")
	}
}

func TestWatch_FollowsOpenFile(t *testing.T) {
	cfg := config.New(config.WithConfigPath(""))
	_ = cfg.Set("reader.watch", true)
	app, _ := newTestApp(t, Options{Config: cfg})
	if app.watcher == nil {
		t.Skip("file watching unavailable")
	}

	path := writeTextFile(t, "book.txt", "one")
	if err := app.OpenFile(path); err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	if app.watcher.Path() != app.Document().Path {
		t.Fatalf("expected watcher on %s, got %s", app.Document().Path, app.watcher.Path())
	}

	if err := os.WriteFile(path, []byte("one\ntwo"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case c := <-app.watcher.Changes():
		app.handleFileChange(c)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	if app.Reader().RawText() != "one\ntwo" {
		t.Errorf("expected reloaded text, got %q", app.Reader().RawText())
	}

	app.LoadText("pasted", "not a file")
	if app.watcher.Path() != "" {
		t.Errorf("expected watcher to stop for text without a file, got %s", app.watcher.Path())
	}
}
