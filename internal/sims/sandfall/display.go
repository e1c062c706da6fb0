package sandfall

import "sandfall/internal/render"

// FillRGBA paints the current pixels into buf, 4 bytes per cell in row-major
// order, with burning cells tinted.
func (w *World) FillRGBA(buf []byte) {
	render.FillPixelsRGBA(buf, w.grid.Pixels())
}
