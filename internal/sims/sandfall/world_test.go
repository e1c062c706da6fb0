package sandfall

import (
	"image"
	"slices"
	"testing"

	"sandfall/internal/grid"
	"sandfall/internal/material"
)

func newWorld(t *testing.T, size int) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Size = size
	cfg.Seed = 7
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return w
}

func TestSandFallsOneCellThenRestsOnFloor(t *testing.T) {
	w := newWorld(t, 256)
	start := image.Pt(10, 0)
	w.Set(start, material.Sand)

	w.Step()
	px := w.Grid().Get(image.Pt(10, 1))
	if px.Material != material.Sand {
		t.Fatalf("expected sand at (10,1) after one frame, got %v", px.Material)
	}
	if !px.Falling() {
		t.Fatal("sand should be falling after its first move")
	}
	if w.Grid().Get(start).Material != material.Empty {
		t.Fatal("origin should be vacated")
	}

	for i := 0; i < 300; i++ {
		w.Step()
	}
	px = w.Grid().Get(image.Pt(10, 255))
	if px.Material != material.Sand {
		t.Fatalf("expected sand resting at (10,255), got %v", px.Material)
	}
	if px.Falling() {
		t.Fatal("resting sand must not be falling")
	}
	if n := w.CountMaterial(material.Sand); n != 1 {
		t.Fatalf("expected exactly one sand cell, got %d", n)
	}
}

func TestIdleChunksLeavePixelsUntouched(t *testing.T) {
	w := newWorld(t, 64)
	w.Step()
	w.Step()
	if got := w.Grid().CountAwake(); got != 0 {
		t.Fatalf("expected every chunk asleep, got %d", got)
	}

	// Raw grid writes do not wake chunks.
	for x := 0; x < 64; x += 3 {
		w.Grid().Set(image.Pt(x, 10), grid.NewPixel(material.Sand, nil))
		w.Grid().Set(image.Pt(x, 40), grid.NewPixel(material.Water, nil))
	}
	before := slices.Clone(w.Grid().Pixels())

	w.Step()
	if !slices.Equal(before, w.Grid().Pixels()) {
		t.Fatal("sleeping chunks must not change")
	}
	if s := w.Stats(); s.Updated != 0 || s.AwakeChunks != 0 {
		t.Fatalf("unexpected stats for idle frame: %+v", s)
	}
}

func TestEveryCellUpdatesExactlyOncePerFrame(t *testing.T) {
	w := newWorld(t, 64)
	for y := 20; y < 64; y++ {
		for x := 0; x < 64; x++ {
			switch (x + y) % 3 {
			case 0:
				w.Set(image.Pt(x, y), material.Sand)
			case 1:
				w.Set(image.Pt(x, y), material.Water)
			}
		}
	}
	for frame := 0; frame < 20; frame++ {
		// Keep the scan covering every cell so settled chunks do not drop out.
		w.Grid().WakeAll()
		nonEmpty := 0
		for _, px := range w.Grid().Pixels() {
			if px.Material != material.Empty {
				nonEmpty++
			}
		}
		w.Step()
		if got := w.Stats().Updated; got != nonEmpty {
			t.Fatalf("frame %d: %d cells updated, want %d", frame, got, nonEmpty)
		}
		for i, px := range w.Grid().Pixels() {
			if px.Updated() {
				t.Fatalf("frame %d: pixel %d still flagged updated", frame, i)
			}
		}
	}
	if w.Frame() != 20 || w.Stats().Frame != 20 {
		t.Fatalf("frame counter = %d", w.Frame())
	}
}

func TestAdmissionFollowsPhaseOrdering(t *testing.T) {
	w := newWorld(t, 16)
	cells := map[material.Material]image.Point{
		material.Sand:  image.Pt(1, 1),
		material.Water: image.Pt(3, 1),
		material.Steam: image.Pt(5, 1),
	}
	for m, p := range cells {
		w.Grid().Set(p, grid.NewPixel(m, nil))
	}
	empty := image.Pt(7, 1)

	cases := []struct {
		src  material.Phase
		dst  image.Point
		want bool
	}{
		{material.Solid, cells[material.Water], true},
		{material.Solid, cells[material.Steam], true},
		{material.Solid, cells[material.Sand], false},
		{material.Liquid, cells[material.Steam], true},
		{material.Liquid, cells[material.Water], false},
		{material.Liquid, cells[material.Sand], false},
		{material.Gas, cells[material.Steam], false},
		{material.Gas, cells[material.Water], false},
		{material.Gas, empty, true},
		{material.Solid, image.Pt(-1, 0), false},
	}
	for _, c := range cases {
		if got := w.admits(c.src, c.dst); got != c.want {
			t.Fatalf("admits(%v, %v) = %v, want %v", c.src, c.dst, got, c.want)
		}
	}
}

func buildWell(w *World, top, floor int) {
	for y := top; y <= floor; y++ {
		w.Set(image.Pt(4, y), material.Titanium)
		w.Set(image.Pt(6, y), material.Titanium)
	}
	w.Set(image.Pt(5, floor), material.Titanium)
}

func TestSandSinksThroughWater(t *testing.T) {
	w := newWorld(t, 16)
	buildWell(w, 4, 10)
	w.Set(image.Pt(5, 9), material.Water)
	w.Set(image.Pt(5, 8), material.Sand)

	for i := 0; i < 5; i++ {
		w.Step()
	}
	if got := w.Grid().Get(image.Pt(5, 9)).Material; got != material.Sand {
		t.Fatalf("expected sand at the bottom of the well, got %v", got)
	}
	if got := w.Grid().Get(image.Pt(5, 8)).Material; got != material.Water {
		t.Fatalf("expected water displaced upwards, got %v", got)
	}
}

func TestWaterDoesNotSinkThroughSand(t *testing.T) {
	w := newWorld(t, 16)
	buildWell(w, 4, 10)
	w.Set(image.Pt(5, 9), material.Sand)
	w.Set(image.Pt(5, 8), material.Water)

	for i := 0; i < 5; i++ {
		w.Step()
	}
	if got := w.Grid().Get(image.Pt(5, 9)).Material; got != material.Sand {
		t.Fatalf("sand should stay at the bottom, got %v", got)
	}
	if got := w.Grid().Get(image.Pt(5, 8)).Material; got != material.Water {
		t.Fatalf("water should rest on the sand, got %v", got)
	}
}

func TestSteamRisesToCeiling(t *testing.T) {
	w := newWorld(t, 32)
	w.Set(image.Pt(16, 30), material.Steam)
	for i := 0; i < 200; i++ {
		w.Step()
	}
	if n := w.CountMaterial(material.Steam); n != 1 {
		t.Fatalf("expected one steam cell, got %d", n)
	}
	found := false
	for x := 0; x < 32; x++ {
		if w.Grid().Get(image.Pt(x, 0)).Material == material.Steam {
			found = true
		}
	}
	if !found {
		t.Fatal("steam should have risen to the top row")
	}
}

func TestWaterSpreadsAcrossFloor(t *testing.T) {
	w := newWorld(t, 32)
	for y := 0; y < 8; y++ {
		w.Set(image.Pt(16, y), material.Water)
	}
	for i := 0; i < 300; i++ {
		w.Step()
	}
	if got := w.CountMaterial(material.Water); got != 8 {
		t.Fatalf("water must be conserved, got %d cells", got)
	}
	for x := 0; x < 32; x++ {
		for y := 0; y < 31; y++ {
			if w.Grid().Get(image.Pt(x, y)).Material == material.Water {
				t.Fatalf("water at (%d,%d) should have spread into the bottom row", x, y)
			}
		}
	}
}

func TestSwapLoosensNeighbours(t *testing.T) {
	w := newWorld(t, 16)
	// Sand resting beside a column that will move.
	rest := image.Pt(6, 5)
	w.Grid().Set(rest, grid.NewPixel(material.Sand, nil))
	w.Grid().At(rest).SetFlag(grid.FlagFalling, false)
	w.Grid().Set(image.Pt(5, 4), grid.NewPixel(material.Sand, nil))

	loosened := false
	for i := 0; i < 32 && !loosened; i++ {
		w.Grid().At(rest).SetFlag(grid.FlagFalling, false)
		w.swapInto(image.Pt(5, 4), image.Pt(5, 5))
		loosened = w.Grid().At(rest).Falling()
		w.Grid().Swap(image.Pt(5, 5), image.Pt(5, 4))
	}
	if !loosened {
		t.Fatal("a neighbour with low inertial resistance should be shaken loose")
	}
}

func TestResetReseedsAndClears(t *testing.T) {
	w := newWorld(t, 32)
	w.Paint(image.Pt(16, 16), 4, material.Sand, BrushSquare)
	w.Step()
	w.Reset(0)
	if n := w.CountMaterial(material.Empty); n != 32*32 {
		t.Fatalf("Reset should clear the grid, %d empty cells", n)
	}
	if w.Frame() != 0 {
		t.Fatalf("Reset should zero the frame counter, got %d", w.Frame())
	}

	run := func(seed int64) []grid.Pixel {
		w.Reset(seed)
		for i := 0; i < 10; i++ {
			w.Paint(image.Pt(16, 4), 6, material.Sand, BrushSpray)
			w.Step()
		}
		return slices.Clone(w.Grid().Pixels())
	}
	if !slices.Equal(run(99), run(99)) {
		t.Fatal("same seed must reproduce the same world")
	}
}
