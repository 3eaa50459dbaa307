// Package palette provides the color palettes cycled across CSV columns.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a true-color RGB value.
type Color struct {
	R, G, B uint8
}

// Neutral is the fallback color used when a palette has no entries.
var Neutral = Color{R: 128, G: 128, B: 128}

// ColorFromHex parses a "#rrggbb" or "#rgb" color string. The leading
// '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b uint64
	var err error

	switch len(hex) {
	case 3:
		r, err = strconv.ParseUint(string(hex[0])+string(hex[0]), 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(string(hex[1])+string(hex[1]), 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(string(hex[2])+string(hex[2]), 16, 8)
		}
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
	case 6:
		r, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(hex[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(hex[4:6], 16, 8)
		}
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Hex returns the "#RRGGBB" representation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns a string representation of the color.
func (c Color) String() string {
	return c.Hex()
}

// Lighten moves the color toward white by amount (0 to 1) in HSL
// lightness, preserving hue and saturation.
func (c Color) Lighten(amount float64) Color {
	if amount <= 0 {
		return c
	}
	if amount > 1 {
		amount = 1
	}
	h, s, l := c.colorful().Hsl()
	l += (1 - l) * amount
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
