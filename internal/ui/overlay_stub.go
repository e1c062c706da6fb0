//go:build !ebiten

package ui

import (
	"image"

	"sandfall/internal/grid"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(*grid.Grid, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// ShowChunks always reports false in headless builds.
func (o *Overlay) ShowChunks() bool { return false }

// SetOutline is a no-op in headless builds.
func (o *Overlay) SetOutline([]image.Point) {}

// SetBrush is a no-op in headless builds.
func (o *Overlay) SetBrush(image.Point, int) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
