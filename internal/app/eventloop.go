package app

import (
	"errors"
	"time"

	"github.com/RichardViskovic/v-reader/internal/renderer"
	"github.com/RichardViskovic/v-reader/internal/renderer/backend"
	"github.com/RichardViskovic/v-reader/internal/source"
)

// eventLoop is the main application loop. Terminal input arrives from a
// poll goroutine; animation frames run on each tick of the frame timer.
func (app *Application) eventLoop() error {
	stop := make(chan struct{})
	defer close(stop)

	events := make(chan backend.Event, 16)
	go app.pollEvents(events, stop)

	interval := app.config.Scroll().FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	frameTicker := time.NewTicker(interval)
	defer frameTicker.Stop()

	var (
		changes <-chan source.Change
		errs    <-chan error
	)
	if app.watcher != nil {
		changes = app.watcher.Changes()
		errs = app.watcher.Errors()
	}

	for {
		select {
		case <-app.done:
			return nil

		case ev := <-events:
			err := app.handleBackendEvent(ev)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				app.logComponentError("input", err)
			}
			app.render()

		case now := <-frameTicker.C:
			if app.tick(now) {
				app.render()
			}

		case c, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			app.handleFileChange(c)
			app.render()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			app.logComponentError("watcher", err)
		}
	}
}

// pollEvents forwards terminal events until stop is closed.
func (app *Application) pollEvents(events chan<- backend.Event, stop <-chan struct{}) {
	for {
		ev := app.backend.PollEvent()

		select {
		case <-stop:
			return
		default:
		}
		if ev.Type == backend.EventNone {
			continue
		}

		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

// tick runs the animation frames queued since the last tick and reports
// whether any ran.
func (app *Application) tick(now time.Time) bool {
	if !app.frames.Pending() {
		return false
	}
	n := app.frames.Run(now)
	app.metrics.RecordFrames(n)
	return n > 0
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	app.metrics.RecordEvent()

	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	default:
		return nil
	}
}

// handleResize reflows the text for the new terminal size.
func (app *Application) handleResize(ev backend.Event) {
	app.surface.SetViewHeight(renderer.TextRows(ev.Height))

	res := app.reader.Resize()
	if !res.Reflowed {
		return
	}
	app.metrics.RecordReflow()
	app.Logger().WithComponent("reader").Debug("reflowed to %dx%d: budget %d -> %d, %d lines, offset %.2f",
		ev.Width, ev.Height, res.OldBudget, res.NewBudget, res.Lines, res.Offset)
}

// render paints the current state.
func (app *Application) render() {
	start := time.Now()
	app.renderer.Render(app.reader, renderer.Chrome{
		FileName:    app.doc.Name,
		Status:      app.status,
		PanelOpen:   app.panelOpen,
		Prompting:   app.prompting,
		PromptInput: string(app.input),
	})
	app.metrics.RecordRender(time.Since(start))
}
