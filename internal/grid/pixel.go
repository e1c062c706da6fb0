// Package grid stores the per-cell pixel state of the world and the chunk
// activity flags used to skip idle regions.
package grid

import (
	"image/color"

	"sandfall/internal/material"
	"sandfall/pkg/core"
)

// Flags is the small per-pixel flag set.
type Flags uint8

const (
	// FlagUpdated marks a pixel already processed in the current frame.
	FlagUpdated Flags = 1 << iota
	// FlagFalling marks a pixel that is in motion.
	FlagFalling
	// FlagBurning marks a pixel that is on fire.
	FlagBurning
)

// Vec2 is a 2D float vector in lattice units.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Pixel is the full state of one grid cell.
type Pixel struct {
	Material material.Material
	Color    color.RGBA
	Velocity Vec2
	Flags    Flags
}

// Updated reports whether the pixel was processed this frame.
func (p Pixel) Updated() bool { return p.Flags&FlagUpdated != 0 }

// Falling reports whether the pixel is in motion.
func (p Pixel) Falling() bool { return p.Flags&FlagFalling != 0 }

// Burning reports whether the pixel is on fire.
func (p Pixel) Burning() bool { return p.Flags&FlagBurning != 0 }

// SetFlag sets or clears f.
func (p *Pixel) SetFlag(f Flags, on bool) {
	if on {
		p.Flags |= f
		return
	}
	p.Flags &^= f
}

// Empty is the default cell.
func Empty() Pixel {
	return Pixel{Material: material.Empty, Color: material.Props(material.Empty).Color}
}

const colorNoise = 0.04

// NewPixel creates a fresh pixel of material m. Noisy materials get a slight
// per-channel colour jitter drawn from rng; rng may be nil for the base colour.
// Movable solids start out falling and embers start out burning.
func NewPixel(m material.Material, rng *core.RNG) Pixel {
	props := material.Lookup(m)
	px := Pixel{Material: m, Color: props.Color}
	if props.Noisy && rng != nil {
		px.Color = jitter(px.Color, rng)
	}
	if props.Movable && props.Phase == material.Solid && props.GravityFactor != 0 {
		px.Flags |= FlagFalling
	}
	if m == material.Ember {
		px.Flags |= FlagBurning
	}
	return px
}

func jitter(c color.RGBA, rng *core.RNG) color.RGBA {
	shift := func(v uint8) uint8 {
		f := float64(v) + rng.Range(-colorNoise, colorNoise)*255
		switch {
		case f < 0:
			return 0
		case f > 255:
			return 255
		default:
			return uint8(f + 0.5)
		}
	}
	return color.RGBA{R: shift(c.R), G: shift(c.G), B: shift(c.B), A: c.A}
}

// Darken scales the colour channels of c by factor, keeping alpha.
func Darken(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float64(v) * factor
		if f < 0 {
			return 0
		}
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
