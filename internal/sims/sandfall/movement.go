package sandfall

import (
	"image"
	"math"

	"sandfall/internal/grid"
	"sandfall/internal/material"
)

var orthogonalOffsets = [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// updatePosition runs the movement phase for the cell at p and returns its
// final coordinate. On return the cell's falling flag records whether it moved.
func (w *World) updatePosition(p image.Point) image.Point {
	g := w.grid
	start := p
	props := material.Lookup(g.At(p).Material)

	defer func() {
		g.At(p).SetFlag(grid.FlagFalling, p != start)
	}()

	if props.GravityFactor != 0 {
		px := g.At(p)
		gravity := grid.Vec2{X: w.cfg.Params.GravityX, Y: w.cfg.Params.GravityY}
		px.Velocity = px.Velocity.Add(gravity.Scale(props.GravityFactor * w.cfg.Params.TimeStep))
		var moved bool
		if p, moved = w.moveOffset(p, velocityOffset(px.Velocity)); moved {
			return p
		}
	}

	if props.InertialResistance != 0 && !g.At(p).Falling() {
		// Resting cells do not build up velocity against their support.
		g.At(p).Velocity.Y = 0
		return p
	}

	if props.Movable {
		if dir := gravityDirection(props.GravityFactor * w.cfg.Params.GravityY); dir != 0 {
			offsets := [2]image.Point{{-1, dir}, {1, dir}}
			if w.rng.Bool() {
				offsets[0], offsets[1] = offsets[1], offsets[0]
			}
			for _, off := range offsets {
				var moved bool
				if p, moved = w.moveOffset(p, off); moved {
					return p
				}
			}
		}
		g.At(p).Velocity.Y = 0
	}

	if dr := props.DispersionRate; dr > 0 {
		g.At(p).Velocity.Y = 0
		offsets := [2]image.Point{{-dr, 0}, {dr, 0}}
		if w.rng.Bool() {
			offsets[0], offsets[1] = offsets[1], offsets[0]
		}
		for _, off := range offsets {
			var moved bool
			if p, moved = w.moveOffset(p, off); moved {
				return p
			}
		}
	}
	return p
}

// moveOffset walks the straight line from p to p+offset one sub-step at a
// time, stopping at the first destination that does not admit the mover.
// It returns the final coordinate and whether the cell moved at all.
func (w *World) moveOffset(p, offset image.Point) (image.Point, bool) {
	steps := max(abs(offset.X), abs(offset.Y))
	if steps == 0 {
		return p, false
	}
	start := p
	phase := material.Lookup(w.grid.At(p).Material).Phase
	for i := 0; i < steps; i++ {
		next := start.Add(offset.Mul(i + 1).Div(steps))
		if !w.admits(phase, next) {
			break
		}
		p = w.swapInto(p, next)
	}
	return p, p != start
}

// admits reports whether a mover of phase src may enter dst.
func (w *World) admits(src material.Phase, dst image.Point) bool {
	if !w.grid.Valid(dst) {
		return false
	}
	occupant := w.grid.At(dst).Material
	if occupant == material.Empty {
		return true
	}
	return material.Displaces(src, material.Lookup(occupant).Phase)
}

// swapInto moves the cell at from to to and applies the side effects of a
// successful step: the mover is marked falling, both chunks are woken and the
// orthogonal neighbours may be shaken loose.
func (w *World) swapInto(from, to image.Point) image.Point {
	g := w.grid
	p := g.Swap(from, to)
	g.At(p).SetFlag(grid.FlagFalling, true)
	g.WakeChunk(from)
	g.WakeChunk(p)
	w.loosenNeighbours(p)
	return p
}

// loosenNeighbours gives each orthogonal neighbour affected by gravity a chance
// of 1-inertial_resistance to start falling, and wakes its chunk.
func (w *World) loosenNeighbours(p image.Point) {
	g := w.grid
	for _, off := range orthogonalOffsets {
		n := p.Add(off)
		if !g.Valid(n) {
			continue
		}
		px := g.At(n)
		props := material.Lookup(px.Material)
		if props.GravityFactor == 0 {
			continue
		}
		g.WakeChunk(n)
		if w.rng.Chance(1 - props.InertialResistance) {
			px.SetFlag(grid.FlagFalling, true)
		}
	}
}

// velocityOffset converts a velocity into a lattice offset, rounding each
// component away from zero so any motion attempts at least one step.
func velocityOffset(v grid.Vec2) image.Point {
	return image.Pt(awayFromZero(v.X), awayFromZero(v.Y))
}

func awayFromZero(f float64) int {
	switch {
	case f > 0:
		return int(math.Ceil(f))
	case f < 0:
		return -int(math.Ceil(-f))
	default:
		return 0
	}
}

func gravityDirection(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
