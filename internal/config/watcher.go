package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write
// before reloading. Editors often produce several events per save.
const DefaultDebounce = 200 * time.Millisecond

// ReloadHandler is called with the freshly loaded configuration.
type ReloadHandler func(*Config)

// Watcher reloads the configuration file when it changes on disk. The
// file's directory is watched rather than the file itself, so
// atomic-rename saves keep working.
type Watcher struct {
	mu       sync.Mutex
	path     string
	fsw      *fsnotify.Watcher
	handlers []ReloadHandler
	errs     chan error
	closeCh  chan struct{}
	wg       sync.WaitGroup
	closed   bool
	debounce time.Duration
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides the reload debounce interval.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching the configuration file at path.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching config directory: %w", err)
	}

	w := &Watcher{
		path:     absPath,
		fsw:      fsw,
		errs:     make(chan error, 8),
		closeCh:  make(chan struct{}),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// OnReload registers a handler invoked after each successful reload.
func (w *Watcher) OnReload(h ReloadHandler) {
	if h == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Errors returns failed reload attempts. The channel is closed by
// Close.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	close(w.errs)
	return err
}

// processLoop handles fsnotify events, debouncing bursts into a
// single reload.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// reload loads the file and notifies handlers. Load failures go to the
// error channel; the previous configuration stays in effect.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.sendError(err)
		return
	}

	w.mu.Lock()
	handlers := make([]ReloadHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(cfg)
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
