package main

import (
	"image"

	"sandfall/internal/material"
	"sandfall/internal/sims/sandfall"
)

type scenario struct {
	name  string
	setup func(w *sandfall.World)
}

var scenarios = []scenario{
	{name: "hourglass", setup: setupHourglass},
	{name: "pool", setup: setupPool},
	{name: "fuse", setup: setupFuse},
	{name: "acid_bath", setup: setupAcidBath},
	{name: "lava_lake", setup: setupLavaLake},
	{name: "blast", setup: setupBlast},
}

func scenarioByName(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}

func fillRect(w *sandfall.World, r image.Rectangle, m material.Material) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			w.Set(image.Pt(x, y), m)
		}
	}
}

// setupHourglass drops a block of sand through a one-cell gap in a titanium shelf.
func setupHourglass(w *sandfall.World) {
	n := w.Size().W
	mid := n / 2
	shelf := n / 2
	fillRect(w, image.Rect(0, shelf, mid, shelf+1), material.Titanium)
	fillRect(w, image.Rect(mid+1, shelf, n, shelf+1), material.Titanium)
	fillRect(w, image.Rect(mid-n/8, shelf-n/4, mid+n/8, shelf), material.Sand)
}

// setupPool pours water and oil into a walled basin.
func setupPool(w *sandfall.World) {
	n := w.Size().W
	fillRect(w, image.Rect(n/8, n-2, n-n/8, n-1), material.Rock)
	fillRect(w, image.Rect(n/8, n/2, n/8+1, n-1), material.Rock)
	fillRect(w, image.Rect(n-n/8-1, n/2, n-n/8, n-1), material.Rock)
	fillRect(w, image.Rect(n/4, n/4, n/2, n/4+n/8), material.Water)
	fillRect(w, image.Rect(n/2, n/4, n-n/4, n/4+n/16), material.Oil)
}

// setupFuse lays a fuse across the floor and lights one end with lava.
func setupFuse(w *sandfall.World) {
	n := w.Size().W
	fillRect(w, image.Rect(2, n-3, n-2, n-1), material.Fuse)
	fillRect(w, image.Rect(2, n-6, 4, n-3), material.Lava)
}

// setupAcidBath sinks a rock and sand pile into acid.
func setupAcidBath(w *sandfall.World) {
	n := w.Size().W
	fillRect(w, image.Rect(0, n-n/4, n, n), material.Acid)
	fillRect(w, image.Rect(n/3, n/4, n-n/3, n/2), material.Sand)
	fillRect(w, image.Rect(n/2-2, n/8, n/2+2, n/4), material.Rock)
}

// setupLavaLake drops water onto lava next to a coal seam.
func setupLavaLake(w *sandfall.World) {
	n := w.Size().W
	fillRect(w, image.Rect(0, n-n/8, n, n), material.Lava)
	fillRect(w, image.Rect(0, n-n/4, n/4, n-n/8), material.Coal)
	fillRect(w, image.Rect(n/3, n/8, n-n/3, n/4), material.Water)
}

// setupBlast fills the lower half with dirt and detonates it.
func setupBlast(w *sandfall.World) {
	n := w.Size().W
	fillRect(w, image.Rect(0, n/2, n, n), material.Dirt)
	fillRect(w, image.Rect(n/2-n/16, n/2+n/8, n/2+n/16, n/2+n/4), material.Titanium)
	w.Explode(image.Pt(n/2, n/2), w.ExplosionDescriptor())
}
