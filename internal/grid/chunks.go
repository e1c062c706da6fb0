package grid

import "image"

// Chunk holds the sleep/wake state of one chunkSize x chunkSize block.
type Chunk struct {
	ActiveNow  bool
	ActiveNext bool
}

// ChunkSize returns the chunk side length in pixels.
func (g *Grid) ChunkSize() int { return g.chunkSize }

// ChunksPerSide returns how many chunks span one side of the grid.
func (g *Grid) ChunksPerSide() int { return g.perSide }

// ChunkOf returns the chunk coordinate owning pixel p.
func (g *Grid) ChunkOf(p image.Point) image.Point {
	return image.Pt(p.X/g.chunkSize, p.Y/g.chunkSize)
}

func (g *Grid) chunkIndex(c image.Point) int { return c.X + g.perSide*c.Y }

func (g *Grid) validChunk(c image.Point) bool {
	return 0 <= c.X && c.X < g.perSide && 0 <= c.Y && c.Y < g.perSide
}

// Chunk returns the state of the chunk at chunk coordinate c. Out-of-range
// coordinates return a zero Chunk.
func (g *Grid) Chunk(c image.Point) Chunk {
	if !g.validChunk(c) {
		return Chunk{}
	}
	return g.chunks[g.chunkIndex(c)]
}

// ChunkBounds returns the pixel rectangle covered by chunk coordinate c.
func (g *Grid) ChunkBounds(c image.Point) image.Rectangle {
	min := c.Mul(g.chunkSize)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(g.chunkSize, g.chunkSize))}
}

func (g *Grid) wakeChunk(c image.Point) {
	if g.validChunk(c) {
		g.chunks[g.chunkIndex(c)].ActiveNext = true
	}
}

// WakeChunk schedules the chunk containing p for the next frame. When p sits
// on the edge row or column of its chunk, the chunk across that edge is woken
// as well so cross-chunk interactions are not missed.
func (g *Grid) WakeChunk(p image.Point) {
	if !g.Valid(p) {
		return
	}
	c := g.ChunkOf(p)
	g.wakeChunk(c)

	last := g.chunkSize - 1
	if p.X%g.chunkSize == 0 {
		g.wakeChunk(c.Add(image.Pt(-1, 0)))
	}
	if p.X%g.chunkSize == last {
		g.wakeChunk(c.Add(image.Pt(1, 0)))
	}
	if p.Y%g.chunkSize == 0 {
		g.wakeChunk(c.Add(image.Pt(0, -1)))
	}
	if p.Y%g.chunkSize == last {
		g.wakeChunk(c.Add(image.Pt(0, 1)))
	}
}

// WakeAll schedules every chunk for the next frame.
func (g *Grid) WakeAll() {
	for i := range g.chunks {
		g.chunks[i].ActiveNext = true
	}
}

// IsAwake reports whether the chunk containing p is processed this frame.
func (g *Grid) IsAwake(p image.Point) bool {
	if !g.Valid(p) {
		return false
	}
	return g.chunks[g.chunkIndex(g.ChunkOf(p))].ActiveNow
}

// CountAwake returns how many chunks are processed this frame.
func (g *Grid) CountAwake() int {
	n := 0
	for _, c := range g.chunks {
		if c.ActiveNow {
			n++
		}
	}
	return n
}

// Rollover starts a new frame: the wakes accumulated during the previous
// frame become the active set and the next set is cleared.
func (g *Grid) Rollover() {
	for i := range g.chunks {
		g.chunks[i].ActiveNow = g.chunks[i].ActiveNext
		g.chunks[i].ActiveNext = false
	}
}
