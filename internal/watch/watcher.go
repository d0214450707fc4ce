// Package watch turns filesystem change notifications into per-column
// refresh hints. The watcher mirrors whatever set of directories the
// column stack currently shows; the UI feeds its events back through
// the controller as Refresh commands.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"colonnade/internal/log"
)

// defaultDebounce batches the bursts that bulk copies and builds cause.
const defaultDebounce = 250 * time.Millisecond

// Event names one watched directory whose contents changed.
type Event struct {
	Dir string
}

// Watcher monitors a mutable set of directories using fsnotify and
// emits one debounced Event per changed directory.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	watched map[string]bool
	timers  map[string]*time.Timer
	stopped bool

	events chan Event
	stop   chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the event batching window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New builds a Watcher and starts its event loop. It watches nothing
// until Sync is called.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: defaultDebounce,
		watched:  make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		events:   make(chan Event, 16),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.loop()
	return w, nil
}

// Events returns the channel delivering change hints.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Sync makes the watched set exactly paths: new directories are added,
// directories no longer present are dropped along with their pending
// timers. Directories that cannot be watched are skipped; the column
// showing them already displays the underlying error.
func (w *Watcher) Sync(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}

	for dir := range w.watched {
		if want[dir] {
			continue
		}
		if err := w.fsw.Remove(dir); err != nil {
			log.With(log.F("dir", dir)).Debugf("unwatch failed: %v", err)
		}
		delete(w.watched, dir)
		if tm, ok := w.timers[dir]; ok {
			tm.Stop()
			delete(w.timers, dir)
		}
	}

	for dir := range want {
		if w.watched[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			log.With(log.F("dir", dir)).Debugf("watch failed: %v", err)
			continue
		}
		w.watched[dir] = true
	}
}

// Stop halts the watcher. It is idempotent and closes the event channel.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	for dir, tm := range w.timers {
		tm.Stop()
		delete(w.timers, dir)
	}
	close(w.stop)
	// emit sends under the same mutex and checks stopped first, so no
	// late timer can reach the closed channel.
	close(w.events)
	if err := w.fsw.Close(); err != nil {
		log.LogWithError(err).Debug("closing fsnotify watcher")
	}
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.note(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Debug("watcher error")
		case <-w.stop:
			return
		}
	}
}

// note resolves the event to the watched directory it belongs to and
// arms (or re-arms) that directory's debounce timer. Events touching
// paths outside the watched set are dropped.
func (w *Watcher) note(ev fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	dir := ""
	switch {
	case w.watched[filepath.Dir(ev.Name)]:
		dir = filepath.Dir(ev.Name)
	case w.watched[ev.Name]:
		// The watched directory itself was removed or renamed.
		dir = ev.Name
	default:
		return
	}

	if tm, ok := w.timers[dir]; ok {
		tm.Reset(w.debounce)
		return
	}
	w.timers[dir] = time.AfterFunc(w.debounce, func() {
		w.emit(dir)
	})
}

func (w *Watcher) emit(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.timers, dir)
	if w.stopped {
		return
	}
	// Dropping under backpressure is fine: a refresh hint that arrives
	// while earlier ones are unread carries no extra information. The
	// send stays non-blocking, so holding the mutex here is safe.
	select {
	case w.events <- Event{Dir: dir}:
	default:
	}
}
