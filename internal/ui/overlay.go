//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"sandfall/internal/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	awakeColor   = color.RGBA{R: 90, G: 220, B: 120, A: 160}
	outlineColor = color.RGBA{R: 255, G: 80, B: 200, A: 230}
	vertexColor  = color.RGBA{R: 255, G: 255, B: 255, A: 230}
	brushColor   = color.RGBA{R: 255, G: 255, B: 255, A: 110}
)

// Overlay draws debugging visuals on top of the world: the awake chunk
// set, the last traced boundary and the brush outline.
type Overlay struct {
	grid  *grid.Grid
	scale int

	showChunks  bool
	showOutline bool
	outline     []image.Point

	brushCenter image.Point
	brushRadius int
	showBrush   bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for g drawn at the given scale.
func NewOverlay(g *grid.Grid, scale int) *Overlay {
	o := &Overlay{grid: g, scale: max(scale, 1), showOutline: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the layers: 1 or K for chunk activity, 2 for the outline.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) || inpututil.IsKeyJustPressed(ebiten.KeyK) {
		o.showChunks = !o.showChunks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showOutline = !o.showOutline
	}
}

// ShowChunks reports whether the chunk layer is visible.
func (o *Overlay) ShowChunks() bool { return o.showChunks }

// SetOutline replaces the traced polygon; nil clears it.
func (o *Overlay) SetOutline(points []image.Point) { o.outline = points }

// SetBrush positions the brush outline in cell coordinates. A negative radius
// hides it.
func (o *Overlay) SetBrush(center image.Point, radius int) {
	o.brushCenter = center
	o.brushRadius = radius
	o.showBrush = radius >= 0
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showChunks {
		o.drawChunks(screen)
	}
	if o.showOutline && len(o.outline) > 1 {
		o.drawOutline(screen)
	}
	if o.showBrush {
		o.drawBrush(screen)
	}
}

func (o *Overlay) drawChunks(screen *ebiten.Image) {
	n := o.grid.ChunksPerSide()
	s := float64(o.scale)
	for cy := 0; cy < n; cy++ {
		for cx := 0; cx < n; cx++ {
			c := image.Pt(cx, cy)
			if !o.grid.Chunk(c).ActiveNow {
				continue
			}
			r := o.grid.ChunkBounds(c)
			x0, y0 := float64(r.Min.X)*s, float64(r.Min.Y)*s
			x1, y1 := float64(r.Max.X)*s, float64(r.Max.Y)*s
			o.drawLine(screen, x0, y0, x1, y0, 1, awakeColor)
			o.drawLine(screen, x1, y0, x1, y1, 1, awakeColor)
			o.drawLine(screen, x1, y1, x0, y1, 1, awakeColor)
			o.drawLine(screen, x0, y1, x0, y0, 1, awakeColor)
		}
	}
}

// drawOutline draws the polygon through lattice corners, which sit on cell
// edges in screen space.
func (o *Overlay) drawOutline(screen *ebiten.Image) {
	s := float64(o.scale)
	thickness := math.Max(1, s/2)
	for i, p := range o.outline {
		q := o.outline[(i+1)%len(o.outline)]
		o.drawLine(screen, float64(p.X)*s, float64(p.Y)*s, float64(q.X)*s, float64(q.Y)*s, thickness, outlineColor)
	}
	for _, p := range o.outline {
		o.drawPoint(screen, float64(p.X)*s, float64(p.Y)*s, thickness*2.5, vertexColor)
	}
}

func (o *Overlay) drawBrush(screen *ebiten.Image) {
	s := float64(o.scale)
	cx := (float64(o.brushCenter.X) + 0.5) * s
	cy := (float64(o.brushCenter.Y) + 0.5) * s
	r := math.Max(float64(o.brushRadius)*s, s/2)
	const segments = 24
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / segments
		a1 := 2 * math.Pi * float64(i+1) / segments
		o.drawLine(screen, cx+r*math.Cos(a0), cy+r*math.Sin(a0), cx+r*math.Cos(a1), cy+r*math.Sin(a1), 1, brushColor)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
