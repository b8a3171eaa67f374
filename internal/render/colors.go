package render

import (
	"image/color"
	"strconv"
	"strings"
)

// hexColor parses a #rrggbb string. Bad input yields opaque black, which
// is acceptable for the fixed palette constants this package uses.
func hexColor(s string) color.Color {
	return hexColorAlpha(s, 1)
}

func hexColorAlpha(s string, alpha float64) color.Color {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		v = 0
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(alpha * 255),
	}
}
