package render

import (
	"fmt"
	"image/color"
)

// paletteSize is the number of distinct path colors.
const paletteSize = 7

// Color returns the color of the path at index i of its bundle.
//
// The low three bits of i%7+1 switch the blue, green and red channels on,
// so consecutive paths never share a color and black is never used.
func Color(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	bits := i%paletteSize + 1
	c := color.NRGBA{A: 0xff}
	if bits&1 != 0 {
		c.B = 0xff
	}
	if bits&2 != 0 {
		c.G = 0xff
	}
	if bits&4 != 0 {
		c.R = 0xff
	}
	return c
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
