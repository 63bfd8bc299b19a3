package app

import (
	"errors"

	"github.com/RichardViskovic/v-reader/internal/reader"
	"github.com/RichardViskovic/v-reader/internal/source"
)

// Status messages shown after loading.
const (
	StatusReadFailed      = "Could not read that file."
	StatusSaveFailed      = "Loaded file, but could not save it locally."
	StatusLoadedFromCache = "Loaded your last file from cache."
	StatusCacheUnusable   = "Local storage is unavailable."
)

// LoadText shows text under name and saves it for the next start.
func (app *Application) LoadText(name, text string) reader.LoadResult {
	res := app.load(source.Document{Name: name, Text: text})
	app.saveToCache(name, text)
	return res
}

// OpenFile reads path and shows its text. On failure the current text
// stays and the status reports the error.
func (app *Application) OpenFile(path string) error {
	doc, err := source.ReadFile(path)
	if err != nil {
		opErr := NewOperationError("open", path, err)
		app.logComponentError("source", opErr)
		app.setStatus(StatusReadFailed)
		return opErr
	}

	app.load(doc)
	app.saveToCache(doc.Name, doc.Text)
	return nil
}

// LoadCached shows the text saved by a previous session. It reports whether
// cached text was loaded; a miss leaves everything unchanged.
func (app *Application) LoadCached() bool {
	if app.cache == nil {
		if app.cacheErr != nil {
			app.logComponentError("cache", app.cacheErr)
			app.setStatus(StatusCacheUnusable)
		}
		return false
	}

	entry, err := app.cache.Load()
	switch {
	case errors.Is(err, source.ErrCacheMiss):
		return false
	case err != nil:
		app.logComponentError("cache", NewOperationError("load", app.cache.Path(), err))
		app.setStatus(StatusCacheUnusable)
		return false
	}

	app.load(source.Document{Name: entry.Name, Text: entry.Text})
	app.setStatus(StatusLoadedFromCache)
	return true
}

// load replaces the document shown by the reader.
func (app *Application) load(doc source.Document) reader.LoadResult {
	res := app.reader.Load(doc.Text)
	app.doc = doc
	app.metrics.RecordLoad()

	app.Logger().WithComponent("reader").Info("loaded %q: %d lines at budget %d", doc.Name, res.Lines, res.Budget)
	app.follow(doc.Path)
	return res
}

// saveToCache stores text for the next start and reports the outcome.
func (app *Application) saveToCache(name, text string) {
	if app.cache == nil {
		if app.cacheErr != nil {
			app.setStatus(StatusSaveFailed)
			return
		}
		app.setStatus(`Loaded "` + name + `".`)
		return
	}

	if _, err := app.cache.Save(name, text); err != nil {
		app.logComponentError("cache", NewOperationError("save", app.cache.Path(), err))
		app.setStatus(StatusSaveFailed)
		return
	}
	app.setStatus(`Saved "` + name + `" for next time.`)
}

// follow points the watcher at path, or stops watching for text that did
// not come from a file.
func (app *Application) follow(path string) {
	if app.watcher == nil {
		return
	}
	if path == "" {
		if err := app.watcher.Unwatch(); err != nil {
			app.logComponentError("watcher", err)
		}
		return
	}
	if err := app.watcher.Watch(path); err != nil {
		app.logComponentError("watcher", NewOperationError("watch", path, err))
	}
}

// handleFileChange reloads the open file after it changed on disk. The
// scroll offset is kept the way a resize keeps it.
func (app *Application) handleFileChange(c source.Change) {
	if c.Path == "" || c.Path != app.doc.Path {
		return
	}
	if c.Removed {
		app.Logger().WithComponent("watcher").Warn("%s was removed", c.Path)
		app.setStatus(`"` + app.doc.Name + `" was removed from disk.`)
		return
	}

	doc, err := source.ReadFile(c.Path)
	if err != nil {
		app.logComponentError("source", NewOperationError("reload", c.Path, err))
		app.setStatus(StatusReadFailed)
		return
	}
	if doc.Text == app.reader.RawText() {
		return
	}

	offset := app.reader.ScrollOffset()
	app.load(doc)
	app.surface.SetScrollOffset(offset)

	if app.cache != nil {
		if _, err := app.cache.Save(doc.Name, doc.Text); err != nil {
			app.logComponentError("cache", NewOperationError("save", app.cache.Path(), err))
		}
	}
	app.setStatus(`Reloaded "` + doc.Name + `".`)
}

func (app *Application) setStatus(msg string) {
	app.status = msg
	app.Logger().Debug("status: %s", msg)
}
