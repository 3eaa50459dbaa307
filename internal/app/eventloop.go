package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Run initializes the screen and processes events until the user quits.
// Returns ErrQuit on a normal exit request.
func (a *App) Run() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer a.screen.Fini()

	a.markVisible()
	a.draw()

	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			// Screen was finalized under us.
			return ErrQuit
		}
		if err := a.handleEvent(ev); err != nil {
			return err
		}
		a.draw()
	}
}

// handleEvent dispatches one terminal event.
func (a *App) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.scrollBy(0) // re-clamp for the new height
		a.markVisible()
	case *tcell.EventInterrupt:
		if _, quit := ev.Data().(quitRequest); quit {
			return ErrQuit
		}
		a.markVisible()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return nil
}

// handleKey processes one key press.
func (a *App) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyUp:
		a.scrollBy(-1)
	case tcell.KeyDown:
		a.scrollBy(1)
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		a.scrollBy(-a.pageRows())
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		a.scrollBy(a.pageRows())
	case tcell.KeyHome:
		a.scrollTo(0)
	case tcell.KeyEnd:
		a.scrollTo(a.doc.LineCount())
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	default:
		return nil
	}
	a.markVisible()
	return nil
}

// handleRune processes printable key bindings.
func (a *App) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 'k':
		a.scrollBy(-1)
	case 'j':
		a.scrollBy(1)
	case 'g':
		a.scrollTo(0)
	case 'G':
		a.scrollTo(a.doc.LineCount())
	case ' ':
		a.scrollBy(a.pageRows())
	case 'l':
		a.togglePalette()
		return nil
	case 'r':
		a.rescan()
		return nil
	default:
		return nil
	}
	a.markVisible()
	return nil
}

// togglePalette switches between the standard and lighter palettes and
// recolors everything already highlighted.
func (a *App) togglePalette() {
	cfg := a.driver.Config()
	cfg.UseLighter = !cfg.UseLighter
	a.driver.SetConfig(cfg)
	a.driver.Refresh()
	a.logger.Debug("palette toggled, lighter=%v", cfg.UseLighter)
}

// rescan recomputes annotations for the whole document.
func (a *App) rescan() {
	if err := a.driver.HighlightAll(a.doc.ID()); err != nil {
		a.logger.Warn("rescan: %v", err)
	}
}
