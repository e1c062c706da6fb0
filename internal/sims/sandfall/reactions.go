package sandfall

import (
	"image"

	"sandfall/internal/grid"
	"sandfall/internal/material"
)

const (
	// corrosionConsumeChance is the chance a corroding cell is used up when it
	// destroys a neighbour.
	corrosionConsumeChance = 0.1
	// emberSpawnChance is the per-neighbour chance an ember source fills an
	// empty neighbour with an ember.
	emberSpawnChance = 0.01
)

var neighbourOffsets = [8]image.Point{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, -1}, {-1, 1}, {1, -1},
}

// updateAttributes applies the combustion lifecycle to a burning cell.
func (w *World) updateAttributes(p image.Point) {
	g := w.grid
	px := g.At(p)
	if !px.Burning() {
		return
	}
	g.WakeChunk(p)

	props := material.Lookup(px.Material)
	putOut := props.PutOut
	if w.surrounded(p) {
		putOut = props.PutOutSurrounded
	}
	if w.rng.Chance(putOut) {
		px.SetFlag(grid.FlagBurning, false)
	}
	if w.rng.Chance(props.BurnOutChance) {
		*px = grid.Empty()
	}
}

// surrounded reports whether every neighbour of p is occupied. Neighbours
// outside the grid count as occupied.
func (w *World) surrounded(p image.Point) bool {
	for _, off := range neighbourOffsets {
		n := p.Add(off)
		if w.grid.Valid(n) && w.grid.At(n).Material == material.Empty {
			return false
		}
	}
	return true
}

// affectNeighbours applies the reaction kinds of the cell at p to each of its
// eight neighbours: boiling, corrosion, ignition and ember spawning.
func (w *World) affectNeighbours(p image.Point) {
	g := w.grid
	for _, off := range neighbourOffsets {
		n := p.Add(off)
		if !g.Valid(n) {
			continue
		}
		px := g.At(p)
		props := material.Lookup(px.Material)
		neighbour := g.At(n)

		if props.CanBoilWater && neighbour.Material == material.Water {
			*neighbour = grid.NewPixel(material.Steam, w.rng)
			g.WakeChunk(n)
		}

		if props.IsCorrosionSource && w.rng.Unit() > material.Lookup(neighbour.Material).CorrosionResist {
			*neighbour = grid.Empty()
			g.WakeChunk(n)
			if w.rng.Chance(corrosionConsumeChance) {
				*px = grid.Empty()
				g.WakeChunk(p)
				return
			}
		}

		if props.IsBurnSource || px.Burning() {
			if w.rng.Chance(material.Lookup(neighbour.Material).Flammability) {
				neighbour.SetFlag(grid.FlagBurning, true)
				g.WakeChunk(n)
			}
		}

		if (props.IsEmberSource || px.Burning()) && neighbour.Material == material.Empty {
			if w.rng.Chance(emberSpawnChance) {
				*neighbour = grid.NewPixel(material.Ember, w.rng)
				g.WakeChunk(n)
			}
		}
	}
}
