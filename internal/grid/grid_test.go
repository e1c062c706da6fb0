package grid

import (
	"errors"
	"image"
	"testing"

	"sandfall/internal/material"
	"sandfall/pkg/core"
)

func mustGrid(t *testing.T, size, chunk int) *Grid {
	t.Helper()
	g, err := New(size, chunk)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", size, chunk, err)
	}
	return g
}

func TestNewRejectsIndivisibleSize(t *testing.T) {
	if _, err := New(100, 16); !errors.Is(err, ErrChunkSize) {
		t.Fatalf("expected ErrChunkSize, got %v", err)
	}
	if _, err := New(0, 16); !errors.Is(err, ErrSize) {
		t.Fatalf("expected ErrSize, got %v", err)
	}
}

func TestNewStartsEmptyAndAwake(t *testing.T) {
	g := mustGrid(t, 32, 8)
	for _, px := range g.Pixels() {
		if px.Material != material.Empty {
			t.Fatalf("expected empty pixel, got %v", px.Material)
		}
	}
	if got := g.CountAwake(); got != 16 {
		t.Fatalf("expected all 16 chunks awake, got %d", got)
	}
}

func TestValidAndSet(t *testing.T) {
	g := mustGrid(t, 16, 4)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {16, 0}, {0, 16}} {
		if g.Valid(p) {
			t.Fatalf("%v should be invalid", p)
		}
		g.Set(p, NewPixel(material.Sand, nil)) // ignored
	}
	p := image.Pt(3, 15)
	g.Set(p, NewPixel(material.Rock, nil))
	if got := g.Get(p).Material; got != material.Rock {
		t.Fatalf("Set did not store pixel, got %v", got)
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	g := mustGrid(t, 16, 4)
	defer func() {
		if recover() == nil {
			t.Fatal("At on an invalid coordinate must panic")
		}
	}()
	g.At(image.Pt(16, 0))
}

func TestSwapReturnsDestination(t *testing.T) {
	g := mustGrid(t, 16, 4)
	a, b := image.Pt(1, 1), image.Pt(1, 2)
	g.Set(a, NewPixel(material.Sand, nil))
	g.Set(b, NewPixel(material.Water, nil))

	if got := g.Swap(a, b); got != b {
		t.Fatalf("Swap returned %v, want %v", got, b)
	}
	if g.Get(b).Material != material.Sand || g.Get(a).Material != material.Water {
		t.Fatal("Swap did not exchange cell state")
	}
}

func TestFillAndLoad(t *testing.T) {
	g := mustGrid(t, 8, 4)
	g.Fill(NewPixel(material.Water, nil))
	for _, px := range g.Pixels() {
		if px.Material != material.Water {
			t.Fatal("Fill left a pixel untouched")
		}
	}

	if err := g.Load(make([]Pixel, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
	saved := make([]Pixel, 64)
	saved[9] = NewPixel(material.Acid, nil)
	if err := g.Load(saved); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Get(image.Pt(1, 1)).Material != material.Acid {
		t.Fatal("Load did not copy pixels")
	}
}

func TestClearUpdated(t *testing.T) {
	g := mustGrid(t, 8, 4)
	g.At(image.Pt(2, 2)).Flags = FlagUpdated | FlagBurning
	g.ClearUpdated()
	px := g.Get(image.Pt(2, 2))
	if px.Updated() {
		t.Fatal("updated flag survived ClearUpdated")
	}
	if !px.Burning() {
		t.Fatal("ClearUpdated must not touch other flags")
	}
}

func TestNewPixelFlagsAndNoise(t *testing.T) {
	rng := core.NewRNG(4)
	sand := NewPixel(material.Sand, rng)
	if !sand.Falling() {
		t.Fatal("fresh sand starts falling")
	}
	if NewPixel(material.Water, rng).Falling() {
		t.Fatal("liquids are not flagged falling on creation")
	}
	if !NewPixel(material.Ember, rng).Burning() {
		t.Fatal("embers start burning")
	}
	base := material.Props(material.Sand).Color
	for i := 0; i < 32; i++ {
		c := NewPixel(material.Sand, rng).Color
		if d := int(c.R) - int(base.R); d > 11 || d < -11 {
			t.Fatalf("noise out of range: base %v got %v", base, c)
		}
	}
	if got := NewPixel(material.Titanium, rng).Color; got != material.Props(material.Titanium).Color {
		t.Fatal("titanium has no colour noise")
	}
}

func TestDarken(t *testing.T) {
	c := Darken(NewPixel(material.Rock, nil).Color, 0.8)
	if c.R != 160 || c.A != 255 {
		t.Fatalf("unexpected darkened colour %v", c)
	}
}
