// Package watch reports changes to the open document made by other programs.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 200 * time.Millisecond

var ErrFileRemoved = errors.New("watched file was removed")

// Event is one debounced change notification.
type Event struct {
	Path string
	Err  error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long events are coalesced.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(log *zap.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// Watcher watches the directory holding a file, since editors and djvused
// replace documents by rename, and forwards events about that file only.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *zap.Logger

	fsw    *fsnotify.Watcher
	events chan Event
	done   chan struct{}

	mu    sync.Mutex
	timer *time.Timer
	once  sync.Once
}

// New starts watching path.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		log:      zap.NewNop(),
		events:   make(chan Event, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw
	go w.loop()
	return w, nil
}

func (w *Watcher) Path() string { return w.path }

// Events delivers debounced notifications. At most one is buffered; a
// notification that finds the buffer full is dropped, since the pending one
// already says the file changed.
func (w *Watcher) Events() <-chan Event { return w.events }

// Close stops the watcher. Events is not closed.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			w.log.Debug("fs event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
			switch {
			case ev.Op&fsnotify.Remove != 0:
				w.send(Event{Path: w.path, Err: ErrFileRemoved})
			case ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.trigger()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
			w.send(Event{Path: w.path, Err: err})
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.send(Event{Path: w.path}) })
}

func (w *Watcher) send(ev Event) {
	select {
	case <-w.done:
	case w.events <- ev:
	default:
	}
}
