// Package watch monitors the configuration sources a target file's
// cascade depends on and reports changes, so embedders can re-resolve
// properties while files are being edited.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/editorconfig/internal/cascade"
)

// Sentinel errors.
var (
	ErrClosed = errors.New("watcher is closed")
)

// Event reports a change to a configuration source.
type Event struct {
	// Path is the slash-separated path of the changed source.
	Path string

	// Dir is the directory containing it.
	Dir string

	// Time is when the change was observed.
	Time time.Time
}

// Watcher watches directories for changes to one configuration
// filename. Events for other files in those directories are ignored.
type Watcher struct {
	mu sync.Mutex

	watcher    *fsnotify.Watcher
	configName string

	// Watched directories
	dirs map[string]bool

	// Output channels
	events chan Event
	errors chan error

	// Last emit per source path, for debouncing
	lastEmit map[string]time.Time
	debounce time.Duration

	// Lifecycle
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the window within which repeated changes to the
// same source collapse into one event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithBufferSize sets the event channel capacity.
func WithBufferSize(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.events = make(chan Event, n)
			w.errors = make(chan error, n)
		}
	}
}

// New creates a watcher for sources named configName.
func New(configName string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:    fsw,
		configName: configName,
		dirs:       make(map[string]bool),
		events:     make(chan Event, 16),
		errors:     make(chan error, 16),
		lastEmit:   make(map[string]time.Time),
		debounce:   100 * time.Millisecond,
		closeCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// WatchTarget watches every directory the resolver's cascade for
// target traverses. The chain is discovered by running a resolution
// with a recording observer; a resolution error cuts discovery short
// but the directories reached until then are still watched.
func (w *Watcher) WatchTarget(r *cascade.Resolver, target string, stopDirs []string) error {
	rec := &dirRecorder{}
	_, _ = r.Resolve(target, stopDirs, rec)

	for _, dir := range rec.dirs {
		if err := w.WatchDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// WatchDir adds one directory to the watch set. Watching the
// directory rather than the source file also catches creation and
// removal of sources that do not exist yet.
func (w *Watcher) WatchDir(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	dir = filepath.ToSlash(dir)
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(filepath.FromSlash(dir)); err != nil {
		return err
	}
	w.dirs[dir] = true
	return nil
}

// Events returns the change event channel. It is closed when the
// watcher closes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed when the watcher
// closes.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and releases its resources. It is
// idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return err
}

// processLoop forwards fsnotify events for the configured filename.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path := filepath.ToSlash(ev.Name)
			if filepath.Base(path) != w.configName {
				continue
			}
			if !w.shouldEmit(path) {
				continue
			}
			out := Event{
				Path: path,
				Dir:  filepath.ToSlash(filepath.Dir(path)),
				Time: time.Now(),
			}
			select {
			case w.events <- out:
			case <-w.closeCh:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.closeCh:
				return
			}
		}
	}
}

// shouldEmit applies the debounce window per source path.
func (w *Watcher) shouldEmit(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if last, ok := w.lastEmit[path]; ok && now.Sub(last) < w.debounce {
		return false
	}
	w.lastEmit[path] = now
	return true
}

// dirRecorder is an observer that records the directories a
// resolution visits and never vetoes.
type dirRecorder struct {
	dirs []string
}

func (r *dirRecorder) ProcessFile(string) bool { return true }

func (r *dirRecorder) ProcessDir(dir string) bool {
	r.dirs = append(r.dirs, dir)
	return true
}

func (r *dirRecorder) ProcessSource(string) bool         { return true }
func (r *dirRecorder) ProcessLine(string) bool           { return true }
func (r *dirRecorder) ProcessOption(string, string) bool { return true }
func (r *dirRecorder) Finished(string)                   {}
