// Package explosion carves craters into a pixel grid by casting straight rays
// from a centre point out to the perimeter of a square box.
package explosion

import (
	"image"
	"math"

	"sandfall/internal/core"
	"sandfall/internal/grid"
	"sandfall/internal/material"
	pcore "sandfall/pkg/core"
)

const (
	// EmberChance is the chance a destroyed cell becomes an ember instead of empty.
	EmberChance = 0.05
	// ScorchFactor scales the colour of solid cells caught in the scorch band.
	ScorchFactor = 0.8
)

// Descriptor parameterises one explosion. Each ray draws its destructive
// radius uniformly from [MinRadius, MaxRadius] and then scorches for a further
// |N(0, Scorch)| cells, capped at 3*Scorch.
type Descriptor struct {
	MinRadius float64
	MaxRadius float64
	Scorch    float64
}

func (d Descriptor) normalized() Descriptor {
	if d.MaxRadius < d.MinRadius {
		d.MinRadius, d.MaxRadius = d.MaxRadius, d.MinRadius
	}
	if d.MinRadius < 0 {
		d.MinRadius = 0
	}
	if d.MaxRadius < 0 {
		d.MaxRadius = 0
	}
	d.Scorch = math.Abs(d.Scorch)
	return d
}

// Reach returns the half-size of the square box the rays are cast to.
func (d Descriptor) Reach() int {
	d = d.normalized()
	b := int(math.Ceil(d.MaxRadius + 3*d.Scorch))
	if b < 1 {
		b = 1
	}
	return b
}

const (
	visitDestroyed uint8 = 1
	visitScorched  uint8 = 2
)

// Apply casts one ray toward every lattice point on the perimeter of the box
// around center. Cells off the grid are ignored. Titanium stops a ray outright.
// Every changed cell wakes its chunk.
func Apply(g *grid.Grid, center image.Point, d Descriptor, rng *pcore.RNG) {
	d = d.normalized()
	b := d.Reach()
	size := g.Size()
	visited := core.NewByteGrid(size, size)

	for i := -b; i <= b; i++ {
		castRay(g, visited, center, image.Pt(i, -b), d, rng)
		castRay(g, visited, center, image.Pt(i, b), d, rng)
	}
	for i := -b + 1; i < b; i++ {
		castRay(g, visited, center, image.Pt(-b, i), d, rng)
		castRay(g, visited, center, image.Pt(b, i), d, rng)
	}
}

func castRay(g *grid.Grid, visited *core.ByteGrid, center, end image.Point, d Descriptor, rng *pcore.RNG) {
	radius := rng.Range(d.MinRadius, d.MaxRadius)
	scorch := math.Min(math.Abs(rng.Normal(0, d.Scorch)), 3*d.Scorch)
	reach := radius + scorch

	steps := max(abs(end.X), abs(end.Y))
	sx := float64(end.X) / float64(steps)
	sy := float64(end.Y) / float64(steps)

	for k := 0; k <= steps; k++ {
		off := image.Pt(int(math.Round(sx*float64(k))), int(math.Round(sy*float64(k))))
		dist := math.Hypot(float64(off.X), float64(off.Y))
		if dist > reach {
			return
		}
		p := center.Add(off)
		if !g.Valid(p) {
			return
		}
		if g.At(p).Material == material.Titanium {
			return
		}

		state := visited.Get(p.X, p.Y)
		if dist <= radius {
			if state == visitDestroyed {
				continue
			}
			if rng.Chance(EmberChance) {
				g.Set(p, grid.NewPixel(material.Ember, rng))
			} else {
				g.Set(p, grid.Empty())
			}
			visited.Set(p.X, p.Y, visitDestroyed)
			g.WakeChunk(p)
			continue
		}

		if state != 0 {
			continue
		}
		px := g.At(p)
		if px.Material == material.Empty || material.Lookup(px.Material).Phase != material.Solid {
			continue
		}
		px.Color = grid.Darken(px.Color, ScorchFactor)
		visited.Set(p.X, p.Y, visitScorched)
		g.WakeChunk(p)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
