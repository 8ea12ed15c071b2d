package render

import "image/color"

// fillColorRGBA copies per-cell colors into buf as packed RGBA bytes.
// Transparent cells are drawn as background.
func fillColorRGBA(buf []byte, colors []color.RGBA, background color.RGBA) {
	for i, c := range colors {
		if c.A == 0 {
			c = background
		}
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// Scaled maps a window coordinate to a cell coordinate. Negative positions
// round toward negative infinity so points left of the grid never land on
// column zero.
func Scaled(v, scale int) int {
	if scale <= 1 {
		return v
	}
	if v < 0 {
		return (v - scale + 1) / scale
	}
	return v / scale
}
