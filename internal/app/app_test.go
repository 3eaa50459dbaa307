package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/NivWeisman/rainbow-csv/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("initializing simulation screen: %v", err)
	}
	screen.SetSize(width, height)
	return screen
}

func newTestApp(t *testing.T, csv string, width, height int) (*App, tcell.SimulationScreen) {
	t.Helper()
	path := writeFile(t, "data.csv", csv)
	screen := newSimScreen(t, width, height)

	a, err := New(Options{Path: path, Screen: screen})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(a.Close)
	return a, screen
}

func TestNew_NoInput(t *testing.T) {
	_, err := New(Options{})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "missing.csv")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNew_Defaults(t *testing.T) {
	a, _ := newTestApp(t, "a,b,c\nd,e,f\n", 40, 10)

	if got := a.Document().LineCount(); got != 2 {
		t.Errorf("LineCount() = %d, want 2", got)
	}
	if delim := a.Driver().Delimiter(); delim != ',' {
		t.Errorf("Delimiter() = %q, want ','", delim)
	}
	if !a.Driver().Config().UseLighter {
		t.Error("expected lighter palette by default")
	}
}

func TestNew_DelimiterOverride(t *testing.T) {
	path := writeFile(t, "data.csv", "a;b\n")
	screen := newSimScreen(t, 40, 10)

	a, err := New(Options{Path: path, Screen: screen, Delimiter: ';'})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(a.Close)

	if delim := a.Driver().Delimiter(); delim != ';' {
		t.Errorf("Delimiter() = %q, want ';'", delim)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "config.toml", "delimiter = \"|\"\nuse_lighter_palette = false\n")
	csvPath := writeFile(t, "data.csv", "a|b\n")
	screen := newSimScreen(t, 40, 10)

	a, err := New(Options{Path: csvPath, ConfigPath: cfgPath, Screen: screen})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(a.Close)

	if delim := a.Driver().Delimiter(); delim != '|' {
		t.Errorf("Delimiter() = %q, want '|'", delim)
	}
	if a.Driver().Config().UseLighter {
		t.Error("expected standard palette per config")
	}
}

func TestClampTop(t *testing.T) {
	tests := []struct {
		name      string
		top       int
		lineCount int
		view      int
		want      int
	}{
		{"in range", 5, 30, 10, 5},
		{"past end", 100, 30, 10, 20},
		{"negative", -4, 30, 10, 0},
		{"short document", 3, 5, 10, 0},
		{"exact fit", 1, 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampTop(tt.top, tt.lineCount, tt.view)
			if got != tt.want {
				t.Errorf("clampTop(%d, %d, %d) = %d, want %d", tt.top, tt.lineCount, tt.view, got, tt.want)
			}
		})
	}
}

func TestApp_ScrollClamp(t *testing.T) {
	lines := ""
	for i := 0; i < 30; i++ {
		lines += "a,b\n"
	}
	a, _ := newTestApp(t, lines, 40, 11) // 10 content rows

	a.scrollTo(100)
	if got := a.TopLine(); got != 20 {
		t.Errorf("TopLine() after scrollTo(100) = %d, want 20", got)
	}

	a.scrollBy(-1000)
	if got := a.TopLine(); got != 0 {
		t.Errorf("TopLine() after scrollBy(-1000) = %d, want 0", got)
	}

	a.scrollBy(7)
	if got := a.TopLine(); got != 7 {
		t.Errorf("TopLine() after scrollBy(7) = %d, want 7", got)
	}
}

func TestApp_DrawHighlights(t *testing.T) {
	a, screen := newTestApp(t, "alpha,beta\n", 40, 10)

	a.markVisible()
	a.draw()

	pal, err := a.Config().Palette()
	if err != nil {
		t.Fatalf("Palette() error: %v", err)
	}
	want := pal.Active().ColorAt(0)
	wantFg := tcell.NewRGBColor(int32(want.R), int32(want.G), int32(want.B))

	cells, width, _ := screen.GetContents()

	// 'a' of "alpha" carries the first column color.
	fg, _, _ := cells[0].Style.Decompose()
	if fg != wantFg {
		t.Errorf("cell 0 foreground = %v, want %v", fg, wantFg)
	}

	// The delimiter keeps the base style.
	if cells[5].Style != a.styles.Base() {
		t.Error("expected delimiter cell to use the base style")
	}

	// Second column gets the second palette color.
	second := pal.Active().ColorAt(1)
	wantFg2 := tcell.NewRGBColor(int32(second.R), int32(second.G), int32(second.B))
	fg2, _, _ := cells[6].Style.Decompose()
	if fg2 != wantFg2 {
		t.Errorf("cell 6 foreground = %v, want %v", fg2, wantFg2)
	}

	// Bottom row is the reversed status bar.
	_, _, attrs := cells[9*width].Style.Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Error("expected reversed style on the status row")
	}
}

func TestApp_TogglePalette(t *testing.T) {
	a, _ := newTestApp(t, "a,b\n", 40, 10)

	if !a.Driver().Config().UseLighter {
		t.Fatal("expected lighter palette at start")
	}

	if err := a.handleRune('l'); err != nil {
		t.Fatalf("handleRune('l') error: %v", err)
	}
	if a.Driver().Config().UseLighter {
		t.Error("expected standard palette after toggle")
	}

	if err := a.handleRune('l'); err != nil {
		t.Fatalf("handleRune('l') error: %v", err)
	}
	if !a.Driver().Config().UseLighter {
		t.Error("expected lighter palette after second toggle")
	}
}

func TestApp_QuitKeys(t *testing.T) {
	a, _ := newTestApp(t, "a,b\n", 40, 10)

	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := a.handleKey(tt.ev); !errors.Is(err, ErrQuit) {
				t.Errorf("handleKey(%s) = %v, want ErrQuit", tt.name, err)
			}
		})
	}
}

func TestApp_ScrollKeys(t *testing.T) {
	lines := ""
	for i := 0; i < 40; i++ {
		lines += "a,b\n"
	}
	a, _ := newTestApp(t, lines, 40, 11) // 10 content rows

	if err := a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)); err != nil {
		t.Fatalf("handleKey(j) error: %v", err)
	}
	if got := a.TopLine(); got != 1 {
		t.Errorf("TopLine() after j = %d, want 1", got)
	}

	if err := a.handleKey(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone)); err != nil {
		t.Fatalf("handleKey(PgDn) error: %v", err)
	}
	if got := a.TopLine(); got != 11 {
		t.Errorf("TopLine() after PgDn = %d, want 11", got)
	}

	if err := a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone)); err != nil {
		t.Fatalf("handleKey(G) error: %v", err)
	}
	if got := a.TopLine(); got != 30 {
		t.Errorf("TopLine() after G = %d, want 30", got)
	}

	if err := a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)); err != nil {
		t.Fatalf("handleKey(g) error: %v", err)
	}
	if got := a.TopLine(); got != 0 {
		t.Errorf("TopLine() after g = %d, want 0", got)
	}
}

func TestApp_ApplyConfig(t *testing.T) {
	a, _ := newTestApp(t, "a,b\n", 40, 10)

	cfg := config.Default()
	cfg.Delimiter = "|"
	cfg.UseLighterPalette = false
	a.applyConfig(cfg)

	if delim := a.Driver().Delimiter(); delim != '|' {
		t.Errorf("Delimiter() = %q, want '|'", delim)
	}
	if a.Driver().Config().UseLighter {
		t.Error("expected standard palette after reload")
	}
	if a.Config() != cfg {
		t.Error("expected Config() to return the reloaded config")
	}
}

func TestApp_ApplyConfigKeepsDelimiterOverride(t *testing.T) {
	path := writeFile(t, "data.csv", "a;b\n")
	screen := newSimScreen(t, 40, 10)

	a, err := New(Options{Path: path, Screen: screen, Delimiter: ';'})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(a.Close)

	cfg := config.Default()
	cfg.Delimiter = "|"
	a.applyConfig(cfg)

	if delim := a.Driver().Delimiter(); delim != ';' {
		t.Errorf("Delimiter() = %q, want command line override ';'", delim)
	}
}

func TestApp_RunQuit(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b\n")
	screen := tcell.NewSimulationScreen("UTF-8")

	a, err := New(Options{Path: path, Screen: screen})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(a.Close)

	done := make(chan error, 1)
	go func() {
		done <- a.Run()
	}()

	// Keep asking until the event loop is up and sees the request.
	timeout := time.After(2 * time.Second)
	for {
		a.Quit()
		select {
		case err := <-done:
			if !errors.Is(err, ErrQuit) {
				t.Fatalf("Run() = %v, want ErrQuit", err)
			}
			return
		case <-timeout:
			t.Fatal("timeout waiting for Run to exit")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
