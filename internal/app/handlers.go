package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/RichardViskovic/v-reader/internal/renderer/backend"
)

// handleKeyEvent dispatches a key. While the prompt has focus keys edit the
// prompt and reading commands are ignored.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	if isInterrupt(ev) {
		return ErrQuit
	}
	if app.prompting {
		app.handlePromptKey(ev)
		return nil
	}

	switch ev.Key {
	case backend.KeyUp:
		app.reader.MoveUp()
	case backend.KeyDown:
		app.reader.MoveDown()
	case backend.KeyTab:
		app.TogglePanel()
	case backend.KeyEscape:
		app.SetPanelOpen(false)
	case backend.KeyRune:
		switch ev.Rune {
		case ' ':
			app.reader.Toggle()
		case 'k':
			app.reader.MoveUp()
		case 'j':
			app.reader.MoveDown()
		case 'm':
			app.TogglePanel()
		case 'o':
			app.OpenPrompt()
		case 'q':
			return ErrQuit
		}
	}
	return nil
}

func isInterrupt(ev backend.Event) bool {
	if ev.Key == backend.KeyCtrlC {
		return true
	}
	return ev.Key == backend.KeyRune && ev.Mod.Has(backend.ModCtrl) && (ev.Rune == 'c' || ev.Rune == 'C')
}

// handlePromptKey edits the open-file prompt.
func (app *Application) handlePromptKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyEnter:
		app.submitPrompt()
	case backend.KeyEscape:
		app.CancelPrompt()
	case backend.KeyBackspace:
		if n := len(app.input); n > 0 {
			app.input = app.input[:n-1]
		}
	case backend.KeyRune:
		if !ev.Mod.Has(backend.ModCtrl) && !ev.Mod.Has(backend.ModAlt) {
			app.input = append(app.input, ev.Rune)
		}
	}
}

// TogglePanel shows or hides the side panel.
func (app *Application) TogglePanel() {
	app.SetPanelOpen(!app.panelOpen)
}

// SetPanelOpen shows or hides the side panel. Closing it also cancels the
// prompt.
func (app *Application) SetPanelOpen(open bool) {
	app.panelOpen = open
	if !open {
		app.CancelPrompt()
	}
}

// OpenPrompt opens the side panel with an empty open-file prompt.
func (app *Application) OpenPrompt() {
	app.panelOpen = true
	app.prompting = true
	app.input = app.input[:0]
}

// CancelPrompt leaves the prompt, keeping the panel as it is.
func (app *Application) CancelPrompt() {
	app.prompting = false
	app.input = app.input[:0]
}

func (app *Application) submitPrompt() {
	path := strings.TrimSpace(string(app.input))
	app.CancelPrompt()
	if path == "" {
		return
	}

	if err := app.OpenFile(expandHome(path)); err == nil {
		app.panelOpen = false
	}
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
