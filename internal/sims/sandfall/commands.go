package sandfall

import (
	"image"
	"math"

	"sandfall/internal/boundary"
	"sandfall/internal/explosion"
	"sandfall/internal/grid"
	"sandfall/internal/material"
)

// Brush selects how Paint places material.
type Brush int

const (
	// BrushSpray places one cell at a random point within the radius.
	BrushSpray Brush = iota
	// BrushSquare fills the square of half-size radius around the centre.
	BrushSquare
)

func (b Brush) String() string {
	switch b {
	case BrushSpray:
		return "spray"
	case BrushSquare:
		return "square"
	default:
		return "brush"
	}
}

// Set places a fresh pixel of material m at p and wakes its chunk.
// Out-of-range coordinates are ignored.
func (w *World) Set(p image.Point, m material.Material) {
	w.SetPixel(p, grid.NewPixel(m, w.rng))
}

// SetPixel writes px at p and wakes its chunk. Out-of-range coordinates are ignored.
func (w *World) SetPixel(p image.Point, px grid.Pixel) {
	if !w.grid.Valid(p) {
		return
	}
	w.grid.Set(p, px)
	w.grid.WakeChunk(p)
}

// Fill overwrites every cell with fresh pixels of material m.
func (w *World) Fill(m material.Material) {
	size := w.grid.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			w.grid.Set(image.Pt(x, y), grid.NewPixel(m, w.rng))
		}
	}
	w.grid.WakeAll()
}

// Clear empties the world.
func (w *World) Clear() {
	w.grid.Fill(grid.Empty())
	w.grid.WakeAll()
}

// Paint applies the brush around center. A negative radius uses the
// configured brush radius.
func (w *World) Paint(center image.Point, radius int, m material.Material, brush Brush) {
	if radius < 0 {
		radius = w.cfg.Params.BrushRadius
	}
	switch brush {
	case BrushSquare:
		for y := -radius; y <= radius; y++ {
			for x := -radius; x <= radius; x++ {
				w.Set(center.Add(image.Pt(x, y)), m)
			}
		}
	default:
		r := w.rng.Range(0, float64(radius))
		theta := w.rng.Range(0, 2*math.Pi)
		off := image.Pt(int(r*math.Cos(theta)), int(r*math.Sin(theta)))
		w.Set(center.Add(off), m)
	}
}

// ExplosionDescriptor returns the descriptor built from the configured radii.
func (w *World) ExplosionDescriptor() explosion.Descriptor {
	p := w.cfg.Params
	return explosion.Descriptor{
		MinRadius: p.ExplosionMinRadius,
		MaxRadius: p.ExplosionMaxRadius,
		Scorch:    p.ExplosionScorch,
	}
}

// Explode applies an explosion at center.
func (w *World) Explode(center image.Point, d explosion.Descriptor) {
	explosion.Apply(w.grid, center, d, w.rng)
}

// TraceBoundary returns the simplified outline of the settled region
// containing seed, or nil when there is none.
func (w *World) TraceBoundary(seed image.Point) []image.Point {
	trace := boundary.Trace(w.grid, seed)
	if trace == nil {
		return nil
	}
	return boundary.SimplifyClosed(trace, boundary.DefaultTolerance)
}

// Restore replaces the world contents from a row-major pixel array and wakes
// every chunk.
func (w *World) Restore(pixels []grid.Pixel, frame uint64) error {
	if err := w.grid.Load(pixels); err != nil {
		return err
	}
	w.grid.WakeAll()
	w.frame = frame
	return nil
}

// CountMaterial returns how many cells currently hold m.
func (w *World) CountMaterial(m material.Material) int {
	n := 0
	for _, px := range w.grid.Pixels() {
		if px.Material == m {
			n++
		}
	}
	return n
}
