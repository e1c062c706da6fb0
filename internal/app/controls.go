package app

import (
	"fmt"
	"image"

	"sandfall/internal/material"
	"sandfall/internal/sims/sandfall"
)

// palette lists the materials selectable from the keyboard, in cycling order.
var palette = func() []material.Material {
	all := material.All()
	out := make([]material.Material, 0, len(all))
	for _, m := range all {
		if m != material.Empty {
			out = append(out, m)
		}
	}
	return out
}()

// cycleMaterial steps through the palette in direction dir, wrapping at both
// ends. Materials outside the palette restart at its first entry.
func cycleMaterial(m material.Material, dir int) material.Material {
	idx := -1
	for i, p := range palette {
		if p == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		return palette[0]
	}
	n := len(palette)
	return palette[((idx+dir)%n+n)%n]
}

// cellAt maps a screen position to a grid cell. ok is false outside the world.
func cellAt(x, y, scale, size int) (image.Point, bool) {
	scale = max(scale, 1)
	if x < 0 || y < 0 {
		return image.Point{}, false
	}
	p := image.Pt(x/scale, y/scale)
	return p, p.X < size && p.Y < size
}

// statusLines summarises the world for the HUD.
func statusLines(w *sandfall.World, m material.Material, brush sandfall.Brush, paused bool) []string {
	stats := w.Stats()
	state := "running"
	if paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("frame %d (%s)", w.Frame(), state),
		fmt.Sprintf("updated %d", stats.Updated),
		fmt.Sprintf("awake chunks %d", stats.AwakeChunks),
		fmt.Sprintf("material %s", m),
		fmt.Sprintf("brush %s r=%d", brush, w.Config().Params.BrushRadius),
	}
}
