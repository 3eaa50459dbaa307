package palette

// LightenAmount is how far the derived lighter palette moves toward
// white.
const LightenAmount = 0.3

// Palette is an ordered sequence of colors, index-addressed modulo its
// length.
type Palette []Color

// ColorAt returns the color for a zero-based column index, cycling
// through the palette. An empty palette yields Neutral; the lookup
// never fails.
func (p Palette) ColorAt(index int) Color {
	if len(p) == 0 {
		return Neutral
	}
	if index < 0 {
		index = 0
	}
	return p[index%len(p)]
}

// Lighter returns a copy of the palette with every entry lightened by
// amount.
func (p Palette) Lighter(amount float64) Palette {
	if len(p) == 0 {
		return nil
	}
	out := make(Palette, len(p))
	for i, c := range p {
		out[i] = c.Lighten(amount)
	}
	return out
}

// ParseHexAll parses a list of hex color strings into a palette.
func ParseHexAll(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, nil
	}
	out := make(Palette, len(hexes))
	for i, h := range hexes {
		c, err := ColorFromHex(h)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Default returns the standard ten-color column palette. The colors are
// Paul Tol's qualitative scheme, chosen for colorblind-safe distinction
// between adjacent columns. See https://personal.sron.nl/~pault/.
func Default() Palette {
	return Palette{
		{R: 0x44, G: 0x77, B: 0xAA}, // blue
		{R: 0xEE, G: 0x66, B: 0x77}, // rose
		{R: 0x22, G: 0x88, B: 0x33}, // green
		{R: 0xCC, G: 0xBB, B: 0x44}, // olive
		{R: 0x66, G: 0xCC, B: 0xEE}, // cyan
		{R: 0xAA, G: 0x33, B: 0x77}, // purple
		{R: 0xBB, G: 0xBB, B: 0xBB}, // grey
		{R: 0xEE, G: 0x88, B: 0x66}, // orange
		{R: 0x44, G: 0xBB, B: 0x99}, // teal
		{R: 0xFF, G: 0xAA, B: 0xBB}, // pink
	}
}

// Config selects the palettes available for column coloring. Standard
// holds the base colors; Lighter holds a brighter variant for dark
// backgrounds; UseLighter picks between them.
type Config struct {
	Standard   Palette
	Lighter    Palette
	UseLighter bool
}

// DefaultConfig returns the default palette configuration: the standard
// set plus a variant lightened by LightenAmount, with the lighter
// variant active.
func DefaultConfig() Config {
	std := Default()
	return Config{
		Standard:   std,
		Lighter:    std.Lighter(LightenAmount),
		UseLighter: true,
	}
}

// Active returns the palette column coloring should draw from. If the
// lighter palette is selected but empty, the standard palette is used
// instead.
func (c Config) Active() Palette {
	if c.UseLighter && len(c.Lighter) > 0 {
		return c.Lighter
	}
	return c.Standard
}
