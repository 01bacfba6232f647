// Package colorutil provides shared color utilities for the plot digitizer.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
)

// RGB is a color with channels normalized to [0, 1].
type RGB struct {
	R, G, B float64
}

// DefaultPalette holds the hex colors the six dataset slots start with.
// Based on the Okabe-Ito colorblind-safe palette.
var DefaultPalette = [6]string{
	"#0072B2", // blue
	"#D55E00", // vermillion
	"#009E73", // green
	"#CC79A7", // pink
	"#E69F00", // orange
	"#56B4E9", // sky blue
}

// HexToRGB parses "#RGB" or "#RRGGBB" (leading '#' optional,
// case-insensitive). Three-digit shorthand expands by digit duplication.
// Malformed input yields black rather than an error; bad colors only
// affect derived visual state, so the parse never interrupts the caller.
func HexToRGB(s string) RGB {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	switch len(s) {
	case 3:
		if !parseHex(s[0:1], &r) || !parseHex(s[1:2], &g) || !parseHex(s[2:3], &b) {
			return RGB{}
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(s[0:2], &r) || !parseHex(s[2:4], &g) || !parseHex(s[4:6], &b) {
			return RGB{}
		}
	default:
		return RGB{}
	}

	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Distance returns the Euclidean distance between two colors in the
// unit RGB cube.
func Distance(a, b RGB) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// FromColor converts a stdlib color to an RGB, ignoring alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	}
}

// ToNRGBA converts to an opaque 8-bit color for rendering.
func (c RGB) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: 255,
	}
}

// Hex returns the color as a "#RRGGBB" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X",
		uint8(math.Round(clamp01(c.R)*255)),
		uint8(math.Round(clamp01(c.G)*255)),
		uint8(math.Round(clamp01(c.B)*255)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
