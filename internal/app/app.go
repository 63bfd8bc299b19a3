// Package app provides the main application structure and coordination
// for the reader. It wires the reading state to the terminal, the file
// sources and the configuration, and runs the event loop that owns them.
package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/RichardViskovic/v-reader/internal/config"
	"github.com/RichardViskovic/v-reader/internal/reader"
	"github.com/RichardViskovic/v-reader/internal/reader/metrics"
	"github.com/RichardViskovic/v-reader/internal/reader/scroll"
	"github.com/RichardViskovic/v-reader/internal/renderer"
	"github.com/RichardViskovic/v-reader/internal/renderer/backend"
	"github.com/RichardViskovic/v-reader/internal/source"
)

// Application is the central coordinator. Everything except Shutdown and
// IsRunning must be called from the goroutine running the event loop.
type Application struct {
	config  *config.Config
	logger  *Logger
	metrics *Metrics
	clock   scroll.Clock
	theme   renderer.Theme

	// Terminal and view
	backend  backend.Backend
	renderer *renderer.Renderer
	surface  *renderer.Surface
	textArea *renderer.TextArea
	frames   *scroll.FrameQueue
	reader   *reader.Reader

	// Sources
	cache    *source.Cache
	cacheErr error
	watcher  *source.Watcher

	// Chrome state
	doc       source.Document
	status    string
	panelOpen bool
	prompting bool
	input     []rune

	// State
	running      atomic.Bool
	done         chan struct{}
	shutdownOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// Config supplies the settings. Nil uses the built-in defaults.
	Config *config.Config

	// File is opened on startup. When empty the cached text is loaded.
	File string

	// Logger receives diagnostics. Nil discards them.
	Logger *Logger

	// Cache replaces the cache derived from the configuration.
	Cache *source.Cache

	// Clock stamps animations. Nil uses the system clock.
	Clock scroll.Clock
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New(config.WithConfigPath(""))
	}

	t := cfg.Theme()
	colors, err := renderer.ParseThemeColors(renderer.HexColors{
		HighlightFG: t.HighlightFG,
		HighlightBG: t.HighlightBG,
		StatusFG:    t.StatusFG,
		StatusBG:    t.StatusBG,
		PanelBG:     t.PanelBG,
	})
	if err != nil {
		return nil, &InitError{Component: "theme", Err: err}
	}

	app := &Application{
		config:  cfg,
		logger:  opts.Logger,
		metrics: NewMetrics(),
		clock:   opts.Clock,
		theme:   renderer.NewTheme(colors),
		frames:  &scroll.FrameQueue{},
		done:    make(chan struct{}),
		opts:    opts,
	}
	if app.clock == nil {
		app.clock = scroll.SystemClock{}
	}

	app.cache, app.cacheErr = app.openCache()

	return app, nil
}

// openCache resolves the last-text cache. A nil cache with a nil error
// means caching is disabled.
func (app *Application) openCache() (*source.Cache, error) {
	if app.opts.Cache != nil {
		return app.opts.Cache, nil
	}
	cc := app.config.Cache()
	if !cc.Enabled {
		return nil, nil
	}
	dir := cc.Dir
	if dir == "" {
		var err error
		if dir, err = source.DefaultCacheDir(); err != nil {
			return nil, NewOperationError("cache", "", err)
		}
	}
	return source.NewCache(dir), nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if err := app.start(); err != nil {
		return err
	}
	defer app.stop()

	app.loadInitial()
	app.render()

	return app.eventLoop()
}

// start builds the view over an initialized backend.
func (app *Application) start() error {
	rc := app.config.Reader()
	fc := app.config.Font()
	sc := app.config.Scroll()

	ropts := renderer.DefaultOptions()
	ropts.PaddingLeft = rc.PaddingLeft
	ropts.PaddingRight = rc.PaddingRight
	app.renderer = renderer.New(app.backend, ropts)
	app.renderer.SetTheme(app.theme)

	width, height := app.backend.Size()
	app.surface = renderer.NewSurface(renderer.TextRows(height))
	app.textArea = renderer.NewTextArea(app.backend, rc.PaddingLeft, rc.PaddingRight, metrics.Font{
		Size:   fc.Size,
		Family: fc.Family,
		Weight: fc.Weight,
	})

	opts := reader.DefaultOptions()
	opts.Metrics = app.textArea.Probe()
	opts.Surface = app.surface
	opts.Scheduler = app.frames
	opts.Clock = app.clock
	opts.ScrollDuration = sc.Duration
	opts.LeadLines = sc.LeadLines
	opts.RowsPerLine = rc.RowsPerLine
	app.reader = reader.New(opts)
	app.surface.BindContent(app.reader)

	if rc.Watch {
		w, err := source.NewWatcher(source.DefaultDebounce)
		if err != nil {
			// Reading works without reloads.
			app.logComponentError("watcher", err)
		} else {
			app.watcher = w
		}
	}

	app.Logger().Info("started on a %dx%d terminal", width, height)
	return nil
}

// stop releases what start acquired.
func (app *Application) stop() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logComponentError("watcher", err)
		}
		app.watcher = nil
	}

	snap := app.metrics.Snapshot()
	app.Logger().WithFields(map[string]any{
		"frames":  snap.FrameCount,
		"renders": snap.RenderCount,
		"loads":   snap.LoadCount,
		"reflows": snap.ReflowCount,
	}).Info("stopped after %s", snap.Uptime.Round(time.Millisecond))
}

// loadInitial opens the file named on the command line, or the cached
// text when there is none.
func (app *Application) loadInitial() {
	if app.opts.File != "" {
		_ = app.OpenFile(app.opts.File)
		return
	}
	app.LoadCached()
}

// Shutdown asks a running event loop to return. It is safe to call from
// any goroutine and more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.done)
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Reader returns the reading state, nil before the view is started.
func (app *Application) Reader() *reader.Reader {
	return app.reader
}

// Renderer returns the renderer, nil before the view is started.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Document returns the loaded document.
func (app *Application) Document() source.Document {
	return app.doc
}

// Status returns the status message.
func (app *Application) Status() string {
	return app.status
}

// PanelOpen reports whether the side panel is shown.
func (app *Application) PanelOpen() bool {
	return app.panelOpen
}

// Prompting reports whether the open-file prompt has focus.
func (app *Application) Prompting() bool {
	return app.prompting
}

// PromptInput returns the text typed into the prompt.
func (app *Application) PromptInput() string {
	return string(app.input)
}
