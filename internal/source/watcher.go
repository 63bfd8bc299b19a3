package source

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Change reports that the watched file changed on disk.
type Change struct {
	Path string
	// Removed is set when the file no longer exists once the burst settles.
	Removed bool
	Time    time.Time
}

// Watcher follows a single file. It watches the file's directory rather
// than the file, so saves that replace the file by rename are still seen.
type Watcher struct {
	mu sync.Mutex

	fsw   *fsnotify.Watcher
	path  string
	dir   string
	delay time.Duration
	timer *time.Timer

	changes chan Change
	errors  chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher creates a watcher that reports a change once no event has
// arrived for delay.
func NewWatcher(delay time.Duration) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		delay:   delay,
		changes: make(chan Change, 8),
		errors:  make(chan error, 8),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts following path, replacing any file followed before.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.dir != dir {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		if w.dir != "" {
			_ = w.fsw.Remove(w.dir)
		}
		w.dir = dir
	}
	w.path = abs
	w.stopTimer()
	return nil
}

// Unwatch stops following the current file.
func (w *Watcher) Unwatch() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	w.stopTimer()
	if w.dir == "" {
		return nil
	}
	err := w.fsw.Remove(w.dir)
	w.dir = ""
	w.path = ""
	return err
}

// Path returns the followed file, or "".
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Changes returns the change channel.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.stopTimer()
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.changes)
	close(w.errors)

	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.path == "" || filepath.Clean(ev.Name) != w.path {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	path := w.path
	w.timer = time.AfterFunc(w.delay, func() { w.fire(path) })
}

// fire reports the settled state of path.
func (w *Watcher) fire(path string) {
	_, err := os.Stat(path)
	change := Change{
		Path:    path,
		Removed: errors.Is(err, os.ErrNotExist),
		Time:    time.Now(),
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.path != path {
		return
	}
	select {
	case w.changes <- change:
	default:
		// A change is already queued; the reader reloads the latest content.
	}
}

func (w *Watcher) sendError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

func (w *Watcher) stopTimer() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
