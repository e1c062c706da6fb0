package main

import (
	"fmt"
	"image"

	"sandfall/internal/material"
	"sandfall/internal/sims/sandfall"
	"sandfall/internal/stream"
)

// applyCommand performs one client control message on the world.
func applyCommand(w *sandfall.World, cmd stream.Command) error {
	at := image.Pt(cmd.X, cmd.Y)
	switch cmd.Type {
	case stream.CommandPaint:
		m, err := material.Parse(cmd.Material)
		if err != nil {
			return err
		}
		brush, err := parseBrush(cmd.Brush)
		if err != nil {
			return err
		}
		w.Paint(at, cmd.Radius, m, brush)
	case stream.CommandExplode:
		d := w.ExplosionDescriptor()
		if cmd.Radius >= 0 {
			d.MaxRadius = float64(cmd.Radius)
			d.MinRadius = min(d.MinRadius, d.MaxRadius)
		}
		w.Explode(at, d)
	case stream.CommandClear:
		w.Clear()
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}
	return nil
}

func parseBrush(name string) (sandfall.Brush, error) {
	switch name {
	case "", "spray":
		return sandfall.BrushSpray, nil
	case "square":
		return sandfall.BrushSquare, nil
	}
	return 0, fmt.Errorf("unknown brush %q", name)
}
