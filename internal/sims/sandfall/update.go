package sandfall

import (
	"image"

	"sandfall/internal/grid"
	"sandfall/internal/material"
)

// Step advances the world by one frame. Rows are scanned bottom to top so a
// cell sees whether the cell below already moved; each row picks its column
// direction at random. Cells in sleeping chunks are skipped.
func (w *World) Step() {
	g := w.grid
	g.Rollover()

	size := g.Size()
	updated := 0
	for y := size - 1; y >= 0; y-- {
		if w.rng.Bool() {
			for x := 0; x < size; x++ {
				if w.visit(image.Pt(x, y)) {
					updated++
				}
			}
			continue
		}
		for x := size - 1; x >= 0; x-- {
			if w.visit(image.Pt(x, y)) {
				updated++
			}
		}
	}

	g.ClearUpdated()
	w.frame++
	w.stats = FrameStats{Frame: w.frame, Updated: updated, AwakeChunks: g.CountAwake()}
}

func (w *World) visit(p image.Point) bool {
	if !w.grid.IsAwake(p) {
		return false
	}
	return w.updatePixel(p)
}

// updatePixel runs the movement, attribute and neighbour phases for the cell
// at p and reports whether the cell was processed.
func (w *World) updatePixel(p image.Point) bool {
	px := w.grid.At(p)
	if px.Material == material.Empty || px.Updated() {
		return false
	}

	p = w.updatePosition(p)
	w.updateAttributes(p)
	w.affectNeighbours(p)

	w.grid.At(p).SetFlag(grid.FlagUpdated, true)
	return true
}
