package boundary

import (
	"image"
	"math"
)

// DefaultTolerance is the perpendicular distance, in lattice units, below
// which intermediate points are dropped.
const DefaultTolerance = 1.0

// Simplify reduces an open polyline with the Douglas-Peucker algorithm. The
// end points are always kept. Inputs with fewer than three points are returned
// as a copy.
func Simplify(points []image.Point, tolerance float64) []image.Point {
	if len(points) < 3 {
		return append([]image.Point(nil), points...)
	}
	keep := make([]bool, len(points))
	keep[0], keep[len(points)-1] = true, true
	markKept(points, 0, len(points)-1, tolerance, keep)

	out := make([]image.Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

func markKept(points []image.Point, first, last int, tolerance float64, keep []bool) {
	if last-first < 2 {
		return
	}
	idx, farthest := -1, 0.0
	for i := first + 1; i < last; i++ {
		if d := perpendicularDistance(points[i], points[first], points[last]); d > farthest {
			idx, farthest = i, d
		}
	}
	if idx < 0 || farthest <= tolerance {
		return
	}
	keep[idx] = true
	markKept(points, first, idx, tolerance, keep)
	markKept(points, idx, last, tolerance, keep)
}

// SimplifyClosed reduces a closed polygon whose first point is not repeated
// at the end. The ring is rotated to start at its topmost, then leftmost,
// vertex and split at the point farthest from it; each half is simplified as
// an open polyline. The result starts at that extreme vertex.
func SimplifyClosed(ring []image.Point, tolerance float64) []image.Point {
	if len(ring) < 4 {
		return append([]image.Point(nil), ring...)
	}
	ring = rotateToExtreme(ring)
	split, farthest := 0, 0.0
	for i, p := range ring {
		if d := distance(p, ring[0]); d > farthest {
			split, farthest = i, d
		}
	}
	if split == 0 {
		return []image.Point{ring[0]}
	}

	head := Simplify(ring[:split+1], tolerance)
	tail := make([]image.Point, 0, len(ring)-split+1)
	tail = append(tail, ring[split:]...)
	tail = append(tail, ring[0])
	tail = Simplify(tail, tolerance)

	out := make([]image.Point, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail[1:len(tail)-1]...)
}

func rotateToExtreme(ring []image.Point) []image.Point {
	start := 0
	for i, p := range ring {
		s := ring[start]
		if p.Y < s.Y || (p.Y == s.Y && p.X < s.X) {
			start = i
		}
	}
	out := make([]image.Point, 0, len(ring))
	out = append(out, ring[start:]...)
	return append(out, ring[:start]...)
}

// perpendicularDistance measures how far p lies from the infinite line through
// a and b, or from a when the two coincide.
func perpendicularDistance(p, a, b image.Point) float64 {
	if a == b {
		return distance(p, a)
	}
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	cross := dx*float64(p.Y-a.Y) - dy*float64(p.X-a.X)
	return math.Abs(cross) / math.Hypot(dx, dy)
}

func distance(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Area returns the signed shoelace area of a closed polygon. With +y pointing
// down a clockwise-on-screen outline has positive area.
func Area(ring []image.Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	sum := 0
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return float64(sum) / 2
}
