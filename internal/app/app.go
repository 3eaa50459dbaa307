// Package app wires the document buffer, highlight driver, style
// registry and configuration into a terminal CSV viewer.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/NivWeisman/rainbow-csv/internal/config"
	"github.com/NivWeisman/rainbow-csv/internal/document"
	"github.com/NivWeisman/rainbow-csv/internal/highlight"
	"github.com/NivWeisman/rainbow-csv/internal/region"
	"github.com/NivWeisman/rainbow-csv/internal/style"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoInput indicates no input file was given.
	ErrNoInput = errors.New("no input file")
)

// Options configures the application.
type Options struct {
	// Path is the CSV file to display.
	Path string

	// ConfigPath optionally names a TOML configuration file. When empty
	// or missing the built-in defaults apply.
	ConfigPath string

	// WatchConfig reloads the configuration file when it changes on
	// disk. Ignored when ConfigPath is empty.
	WatchConfig bool

	// Delimiter overrides the configured field delimiter when nonzero.
	Delimiter rune

	// Logger receives application diagnostics. Nil disables logging;
	// the terminal belongs to the viewer while it runs, so callers
	// should point this at a file.
	Logger *Logger

	// Screen is the terminal to draw on. When nil a real terminal
	// screen is created. Tests pass a simulation screen.
	Screen tcell.Screen
}

// App is the terminal viewer. It owns one document and keeps the
// highlight driver fed with the regions the user is looking at.
type App struct {
	mu            sync.Mutex
	logger        *Logger
	cfg           *config.Config
	delimOverride rune
	topLine       int
	closed        bool

	screen    tcell.Screen
	ownScreen bool

	doc     *document.Buffer
	driver  *highlight.Driver
	index   *highlight.Index
	styles  *style.Registry
	dirty   *region.Tracker
	watcher *config.Watcher
}

// New builds the application from the given options.
func New(opts Options) (*App, error) {
	if opts.Path == "" {
		return nil, ErrNoInput
	}

	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.SetLevel(ParseLogLevel(cfg.LogLevel))

	doc, err := document.Open(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", opts.Path, err)
	}

	pal, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("building palette: %w", err)
	}

	delim := cfg.DelimiterRune()
	if opts.Delimiter != 0 {
		delim = opts.Delimiter
	}

	driver := highlight.NewDriver(
		highlight.WithPalette(pal),
		highlight.WithDelimiter(delim),
		highlight.WithLogger(logger.WithComponent("highlight")),
	)
	if err := driver.Attach(doc); err != nil {
		return nil, fmt.Errorf("attaching document: %w", err)
	}
	index, ok := driver.IndexFor(doc.ID())
	if !ok {
		return nil, highlight.ErrNotAttached
	}

	a := &App{
		logger:        logger,
		cfg:           cfg,
		delimOverride: opts.Delimiter,
		doc:           doc,
		driver:        driver,
		index:         index,
		styles:        style.NewRegistry(tcell.StyleDefault),
		dirty:         region.NewTracker(),
		screen:        opts.Screen,
	}

	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating screen: %w", err)
		}
		a.screen = screen
		a.ownScreen = true
	}

	if opts.ConfigPath != "" && opts.WatchConfig {
		watcher, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("watching config: %w", err)
		}
		watcher.OnReload(a.applyConfig)
		go a.drainWatcherErrors(watcher.Errors())
		a.watcher = watcher
	}

	return a, nil
}

// Document returns the open document.
func (a *App) Document() *document.Buffer {
	return a.doc
}

// Driver returns the highlight driver.
func (a *App) Driver() *highlight.Driver {
	return a.driver
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// applyConfig installs a freshly loaded configuration: log level,
// palette and delimiter. A delimiter given on the command line keeps
// winning over the file. The event loop is woken so the new colors are
// drawn.
func (a *App) applyConfig(cfg *config.Config) {
	pal, err := cfg.Palette()
	if err != nil {
		a.logger.Warn("config reload: %v", err)
		return
	}

	a.mu.Lock()
	a.cfg = cfg
	delim := cfg.DelimiterRune()
	if a.delimOverride != 0 {
		delim = a.delimOverride
	}
	a.mu.Unlock()

	a.logger.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.driver.SetConfig(pal)
	a.driver.SetDelimiter(delim)
	a.driver.Refresh()
	a.logger.Info("config reloaded")

	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort wakeup
}

func (a *App) drainWatcherErrors(errs <-chan error) {
	for err := range errs {
		a.logger.Warn("config watcher: %v", err)
	}
}

// quitRequest is posted by Quit to unblock the event loop.
type quitRequest struct{}

// Quit asks the event loop to exit. Safe to call from any goroutine.
func (a *App) Quit() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
}

// Close releases the watcher and the terminal. Safe to call more than
// once.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	watcher := a.watcher
	a.mu.Unlock()

	if watcher != nil {
		_ = watcher.Close()
	}
	if a.ownScreen {
		a.screen.Fini()
	}
}
