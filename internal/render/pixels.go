package render

import (
	"image/color"

	"sandfall/internal/grid"
)

// FlameColor is blended over burning pixels.
var FlameColor = color.RGBA{R: 255, G: 120, B: 30, A: 255}

const flameWeight = 0.6

// FillPixelsRGBA converts grid pixels into tightly packed RGBA bytes in buf.
// buf must hold at least 4*len(pixels) bytes; extra pixels are ignored.
func FillPixelsRGBA(buf []byte, pixels []grid.Pixel) {
	n := len(buf) / 4
	if n > len(pixels) {
		n = len(pixels)
	}
	for i := 0; i < n; i++ {
		px := &pixels[i]
		col := px.Color
		if px.Burning() {
			col = blend(col, FlameColor, flameWeight)
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// PixelColor returns the display colour of a single pixel, including the
// flame tint.
func PixelColor(px grid.Pixel) color.RGBA {
	if px.Burning() {
		return blend(px.Color, FlameColor, flameWeight)
	}
	return px.Color
}

func blend(base, overlay color.RGBA, weight float64) color.RGBA {
	if weight <= 0 {
		return base
	}
	if weight >= 1 {
		return overlay
	}
	inv := 1 - weight
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*weight + 0.5)
	}
	return color.RGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: base.A,
	}
}
