package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/NivWeisman/rainbow-csv/internal/region"
)

// viewRows returns how many rows of the screen show document lines.
// The bottom row is the status bar.
func viewRows(height int) int {
	return height - 1
}

// clampTop keeps the top line inside the scrollable range.
func clampTop(top, lineCount, view int) int {
	maxTop := max(lineCount-view, 0)
	return min(max(top, 0), maxTop)
}

// TopLine returns the first visible document line.
func (a *App) TopLine() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.topLine
}

// scrollTo moves the viewport so line is at the top, clamped to the
// document.
func (a *App) scrollTo(line int) {
	_, height := a.screen.Size()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.topLine = clampTop(line, a.doc.LineCount(), viewRows(height))
}

// scrollBy moves the viewport by delta lines.
func (a *App) scrollBy(delta int) {
	_, height := a.screen.Size()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.topLine = clampTop(a.topLine+delta, a.doc.LineCount(), viewRows(height))
}

// pageRows is how far paging keys move.
func (a *App) pageRows() int {
	_, height := a.screen.Size()
	return max(viewRows(height), 1)
}

// markVisible queues the lines currently on screen for highlighting.
func (a *App) markVisible() {
	_, height := a.screen.Size()
	view := viewRows(height)
	if view <= 0 {
		return
	}

	top := a.TopLine()
	last := min(top+view-1, a.doc.LineCount()-1)
	if last < top {
		return
	}
	a.dirty.Mark(region.New(top, last))
}

// draw flushes pending dirty regions through the driver and repaints
// the screen.
func (a *App) draw() {
	for _, r := range a.dirty.Take() {
		if err := a.driver.OnRegionDirty(a.doc.ID(), r); err != nil {
			a.logger.Warn("highlighting lines %d-%d: %v", r.Start, r.End, err)
		}
	}

	a.screen.Clear()

	width, height := a.screen.Size()
	view := viewRows(height)
	top := a.TopLine()

	for row := 0; row < view; row++ {
		a.drawLine(row, top+row, width)
	}
	a.drawStatus(width, height)
	a.screen.Show()
}

// drawLine paints one document line with its column colors. Runs of the
// line outside any field span, such as delimiters and quotes, use the
// base style.
func (a *App) drawLine(row, line, width int) {
	text, err := a.doc.Line(line)
	if err != nil {
		return
	}
	anns := a.index.Line(line)
	base := a.styles.Base()

	x := 0
	for i, r := range text {
		if x >= width {
			break
		}
		st := base
		for _, ann := range anns {
			if i >= ann.Start && i < ann.End {
				st = a.styles.StyleFor(ann.Color)
				break
			}
		}
		if r == '\t' {
			r = ' '
		}
		a.screen.SetContent(x, row, r, nil, st)
		x++
	}
}

// drawStatus paints the bottom status bar.
func (a *App) drawStatus(width, height int) {
	if height < 1 {
		return
	}

	mode := "standard"
	if a.driver.Config().UseLighter {
		mode = "lighter"
	}
	status := fmt.Sprintf(" %s | %d lines | top %d | delim %q | palette %s | q:quit j/k:scroll l:palette r:rescan",
		a.doc.Name(), a.doc.LineCount(), a.TopLine()+1, a.driver.Delimiter(), mode)

	st := tcell.StyleDefault.Reverse(true)
	row := height - 1
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, st)
		x++
	}
	for ; x < width; x++ {
		a.screen.SetContent(x, row, ' ', nil, st)
	}
}
