package main

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/grid"
	"sandfall/internal/render"
	"sandfall/internal/sims/sandfall"
)

// upperHalf is drawn with the upper pixel as foreground and the lower pixel as
// background, so one character cell shows two grid rows.
const upperHalf = '▀'

func pixelColor(px grid.Pixel) tcell.Color {
	c := render.PixelColor(px)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func cellStyle(top, bottom grid.Pixel) tcell.Style {
	return tcell.StyleDefault.Foreground(pixelColor(top)).Background(pixelColor(bottom))
}

// drawWorld paints the world into the top-left of screen, clipped to the
// screen size minus the status row. It returns the number of character rows used.
func drawWorld(screen tcell.Screen, w *sandfall.World) int {
	cols, rows := screen.Size()
	rows--
	g := w.Grid()
	size := g.Size()
	used := 0
	for r := 0; r < rows && 2*r < size; r++ {
		for x := 0; x < cols && x < size; x++ {
			top := g.Get(image.Pt(x, 2*r))
			bottom := grid.Empty()
			if 2*r+1 < size {
				bottom = g.Get(image.Pt(x, 2*r+1))
			}
			screen.SetContent(x, r, upperHalf, nil, cellStyle(top, bottom))
		}
		used++
	}
	return used
}

// drawStatus writes one line of text at row, padded to the screen width.
func drawStatus(screen tcell.Screen, row int, line string) {
	cols, _ := screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(line)
	for x := 0; x < cols; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		screen.SetContent(x, row, ch, nil, style)
	}
}

func statusLine(t *terminal) string {
	state := "run"
	if t.paused {
		state = "pause"
	}
	stats := t.world.Stats()
	return fmt.Sprintf("frame %d %s | %s %s r=%d | awake %d | space pause  n step  [ ] material  b brush  e explode  c clear  q quit",
		t.world.Frame(), state, t.material, t.brush, t.world.Config().Params.BrushRadius, stats.AwakeChunks)
}

// screenToCell maps a character cell to the upper grid cell it displays.
func screenToCell(x, y int) image.Point {
	return image.Pt(x, 2*y)
}
