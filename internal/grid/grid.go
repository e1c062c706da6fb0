package grid

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrSize is returned for non-positive grid or chunk dimensions.
	ErrSize = errors.New("grid: size must be positive")
	// ErrChunkSize is returned when the grid size is not a multiple of the chunk size.
	ErrChunkSize = errors.New("grid: size must be divisible by chunk size")
	// ErrSizeMismatch is returned when bulk-loaded pixels do not fit the grid.
	ErrSizeMismatch = errors.New("grid: pixel count does not match grid size")
)

// Grid is a fixed square array of pixels partitioned into square chunks.
// Pixels are addressed by image.Point with +y pointing down.
type Grid struct {
	size      int
	chunkSize int
	perSide   int

	pixels []Pixel
	chunks []Chunk
}

// New allocates a size x size grid of empty pixels with every chunk awake.
func New(size, chunkSize int) (*Grid, error) {
	if size <= 0 || chunkSize <= 0 {
		return nil, ErrSize
	}
	if size%chunkSize != 0 {
		return nil, fmt.Errorf("%w: %d %% %d = %d", ErrChunkSize, size, chunkSize, size%chunkSize)
	}
	perSide := size / chunkSize
	g := &Grid{
		size:      size,
		chunkSize: chunkSize,
		perSide:   perSide,
		pixels:    make([]Pixel, size*size),
		chunks:    make([]Chunk, perSide*perSide),
	}
	g.Fill(Empty())
	for i := range g.chunks {
		g.chunks[i] = Chunk{ActiveNow: true, ActiveNext: true}
	}
	return g, nil
}

// Size returns the side length in pixels.
func (g *Grid) Size() int { return g.size }

// Bounds returns the pixel rectangle covered by the grid.
func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.size, g.size) }

// Valid reports whether p lies inside the grid.
func (g *Grid) Valid(p image.Point) bool {
	return 0 <= p.X && p.X < g.size && 0 <= p.Y && p.Y < g.size
}

func (g *Grid) index(p image.Point) int { return p.X + g.size*p.Y }

// At returns mutable access to the pixel at p. The pointer is only valid
// until the next Swap; re-derive it by coordinate afterwards.
// p must satisfy Valid.
func (g *Grid) At(p image.Point) *Pixel {
	if !g.Valid(p) {
		panic(fmt.Sprintf("grid: coordinate %v outside %dx%d grid", p, g.size, g.size))
	}
	return &g.pixels[g.index(p)]
}

// Get returns a copy of the pixel at p. p must satisfy Valid.
func (g *Grid) Get(p image.Point) Pixel { return *g.At(p) }

// Set overwrites the pixel at p. Out-of-range coordinates are ignored.
// Set does not wake chunks.
func (g *Grid) Set(p image.Point, px Pixel) {
	if !g.Valid(p) {
		return
	}
	g.pixels[g.index(p)] = px
}

// Fill overwrites every pixel with px.
func (g *Grid) Fill(px Pixel) {
	for i := range g.pixels {
		g.pixels[i] = px
	}
}

// Swap exchanges the full state of the cells at a and b and returns b, the
// new location of the pixel that was at a.
func (g *Grid) Swap(a, b image.Point) image.Point {
	if !g.Valid(a) || !g.Valid(b) {
		panic(fmt.Sprintf("grid: swap %v <-> %v outside %dx%d grid", a, b, g.size, g.size))
	}
	ia, ib := g.index(a), g.index(b)
	g.pixels[ia], g.pixels[ib] = g.pixels[ib], g.pixels[ia]
	return b
}

// Pixels exposes the row-major pixel array for rendering and bulk saving.
func (g *Grid) Pixels() []Pixel { return g.pixels }

// Load replaces every pixel from a row-major array of exactly Size()*Size()
// entries. Chunk activity is not restored; callers follow up with WakeAll.
func (g *Grid) Load(pixels []Pixel) error {
	if len(pixels) != len(g.pixels) {
		return fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(pixels), len(g.pixels))
	}
	copy(g.pixels, pixels)
	return nil
}

// ClearUpdated resets the per-frame dedup flag on every pixel.
func (g *Grid) ClearUpdated() {
	for i := range g.pixels {
		g.pixels[i].Flags &^= FlagUpdated
	}
}
