// Package boundary extracts the outline of a connected, settled region of
// pixels as a polygon over lattice corner points, and simplifies it.
package boundary

import (
	"image"

	"sandfall/internal/core"
	"sandfall/internal/grid"
	"sandfall/internal/material"
)

// region holds the flood-filled cell set and the corners those cells touch.
type region struct {
	cells   *core.ByteGrid // size x size
	corners *core.ByteGrid // (size+1) x (size+1)
}

func (r *region) in(x, y int) bool { return r.cells.Get(x, y) != 0 }

func (r *region) hasCorner(c image.Point) bool { return r.corners.Get(c.X, c.Y) != 0 }

// member reports whether the cell at p can belong to a region.
func member(g *grid.Grid, p image.Point) bool {
	px := g.At(p)
	return px.Material != material.Empty && !px.Falling()
}

// fill floods the 4-connected set of settled, non-empty cells containing seed.
func fill(g *grid.Grid, seed image.Point) *region {
	size := g.Size()
	r := &region{
		cells:   core.NewByteGrid(size, size),
		corners: core.NewByteGrid(size+1, size+1),
	}
	stack := []image.Point{seed}
	r.cells.Set(seed.X, seed.Y, 1)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r.corners.Set(p.X, p.Y, 1)
		r.corners.Set(p.X+1, p.Y, 1)
		r.corners.Set(p.X, p.Y+1, 1)
		r.corners.Set(p.X+1, p.Y+1, 1)

		for _, off := range [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := p.Add(off)
			if !g.Valid(n) || r.in(n.X, n.Y) || !member(g, n) {
				continue
			}
			r.cells.Set(n.X, n.Y, 1)
			stack = append(stack, n)
		}
	}
	return r
}

// onBoundary reports whether corner c touches a cell outside the region.
func (r *region) onBoundary(c image.Point) bool {
	return !r.in(c.X-1, c.Y-1) || !r.in(c.X, c.Y-1) || !r.in(c.X-1, c.Y) || !r.in(c.X, c.Y)
}

// rightHanded reports whether the unit edge from c in direction d separates
// the region from the outside with the region on the walker's right. With +y
// pointing down this walks the outer boundary clockwise on screen.
func (r *region) rightHanded(c, d image.Point) bool {
	var right, left bool
	switch d {
	case image.Pt(1, 0):
		right, left = r.in(c.X, c.Y), r.in(c.X, c.Y-1)
	case image.Pt(0, 1):
		right, left = r.in(c.X-1, c.Y), r.in(c.X, c.Y)
	case image.Pt(-1, 0):
		right, left = r.in(c.X-1, c.Y-1), r.in(c.X-1, c.Y)
	case image.Pt(0, -1):
		right, left = r.in(c.X, c.Y-1), r.in(c.X-1, c.Y-1)
	}
	return right && !left
}

// turns lists candidate headings relative to the current one, preferring a
// right turn, then straight on, then a left turn.
func turns(heading image.Point) [3]image.Point {
	right := image.Pt(-heading.Y, heading.X)
	left := image.Pt(heading.Y, -heading.X)
	return [3]image.Point{right, heading, left}
}

var firstHeadings = [4]image.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Trace returns the ordered corner points outlining the region that contains
// seed. The region is the 4-connected set of non-empty cells that are not
// falling. The polygon is implicitly closed; its first point is not repeated
// at the end. A seed off the grid, empty or falling yields nil. If the walk
// cannot continue the partial trace is returned.
func Trace(g *grid.Grid, seed image.Point) []image.Point {
	if !g.Valid(seed) || !member(g, seed) {
		return nil
	}
	r := fill(g, seed)

	anchor := image.Pt(seed.X, seed.Y)
	for anchor.Y > 0 && !r.onBoundary(anchor) {
		anchor.Y--
	}

	size := g.Size()
	limit := 4 * (size + 1) * (size + 1)
	trace := []image.Point{anchor}
	cur, prev := anchor, image.Pt(-1, -1)
	var heading image.Point
	for i := 0; i < limit; i++ {
		next, dir, ok := r.step(cur, prev, heading)
		if !ok {
			return trace
		}
		if next == anchor {
			return trace
		}
		trace = append(trace, next)
		prev, cur, heading = cur, next, dir
	}
	return trace
}

func (r *region) step(cur, prev, heading image.Point) (image.Point, image.Point, bool) {
	var candidates []image.Point
	if heading == (image.Point{}) {
		candidates = firstHeadings[:]
	} else {
		t := turns(heading)
		candidates = t[:]
	}
	for _, d := range candidates {
		next := cur.Add(d)
		if next == prev || !r.hasCorner(next) || !r.rightHanded(cur, d) {
			continue
		}
		return next, d, true
	}
	return image.Point{}, image.Point{}, false
}
