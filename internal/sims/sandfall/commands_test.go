package sandfall

import (
	"image"
	"testing"

	"sandfall/internal/boundary"
	"sandfall/internal/core"
	"sandfall/internal/explosion"
	"sandfall/internal/grid"
	"sandfall/internal/material"
)

func TestSquareBrushFillsSquare(t *testing.T) {
	w := newWorld(t, 32)
	w.Paint(image.Pt(10, 10), 1, material.Rock, BrushSquare)
	if n := w.CountMaterial(material.Rock); n != 9 {
		t.Fatalf("radius 1 square should cover 9 cells, got %d", n)
	}
	for y := 9; y <= 11; y++ {
		for x := 9; x <= 11; x++ {
			if w.Grid().Get(image.Pt(x, y)).Material != material.Rock {
				t.Fatalf("missing rock at (%d,%d)", x, y)
			}
		}
	}

	// Clipped at the grid edge.
	w.Clear()
	w.Paint(image.Pt(0, 0), 2, material.Rock, BrushSquare)
	if n := w.CountMaterial(material.Rock); n != 9 {
		t.Fatalf("corner square should be clipped to 9 cells, got %d", n)
	}
}

func TestSprayStaysWithinRadius(t *testing.T) {
	w := newWorld(t, 64)
	center := image.Pt(32, 32)
	for i := 0; i < 200; i++ {
		w.Paint(center, 5, material.Rock, BrushSpray)
	}
	if w.CountMaterial(material.Rock) == 0 {
		t.Fatal("spray painted nothing")
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if w.Grid().Get(image.Pt(x, y)).Material != material.Rock {
				continue
			}
			d := image.Pt(x, y).Sub(center)
			if d.X*d.X+d.Y*d.Y > 25 {
				t.Fatalf("spray landed outside the radius at (%d,%d)", x, y)
			}
		}
	}
}

func TestPaintNegativeRadiusUsesConfiguredBrush(t *testing.T) {
	w := newWorld(t, 64)
	if !w.SetIntParameter("brush_radius", 2) {
		t.Fatal("brush_radius should be settable")
	}
	w.Paint(image.Pt(20, 20), -1, material.Rock, BrushSquare)
	if n := w.CountMaterial(material.Rock); n != 25 {
		t.Fatalf("expected a 5x5 square, got %d cells", n)
	}
}

func TestSetWakesChunkAndIgnoresOutOfRange(t *testing.T) {
	w := newWorld(t, 32)
	w.Step()
	w.Step()
	w.Set(image.Pt(-1, 4), material.Sand)
	w.Set(image.Pt(4, 32), material.Sand)
	if w.CountMaterial(material.Sand) != 0 {
		t.Fatal("out-of-range writes must be ignored")
	}
	p := image.Pt(20, 20)
	w.Set(p, material.Sand)
	if !w.Grid().Chunk(w.Grid().ChunkOf(p)).ActiveNext {
		t.Fatal("Set should wake the written chunk")
	}
}

func TestFillAndClear(t *testing.T) {
	w := newWorld(t, 16)
	w.Fill(material.Water)
	if n := w.CountMaterial(material.Water); n != 16*16 {
		t.Fatalf("Fill should cover the grid, got %d", n)
	}
	w.Clear()
	if n := w.CountMaterial(material.Empty); n != 16*16 {
		t.Fatalf("Clear should empty the grid, got %d", n)
	}
}

func TestExplodeUsesConfiguredDescriptor(t *testing.T) {
	w := newWorld(t, 64)
	w.Fill(material.Sand)
	d := w.ExplosionDescriptor()
	if d.MinRadius != 8 || d.MaxRadius != 12 || d.Scorch != 4 {
		t.Fatalf("unexpected descriptor %+v", d)
	}
	w.Explode(image.Pt(32, 32), explosion.Descriptor{MinRadius: 5, MaxRadius: 5})
	if got := w.Grid().Get(image.Pt(32, 32)).Material; got == material.Sand {
		t.Fatal("explosion centre should be destroyed")
	}
	if got := w.Grid().Get(image.Pt(0, 0)).Material; got != material.Sand {
		t.Fatalf("far corner should be untouched, got %v", got)
	}
}

func TestTraceBoundaryOfRectangle(t *testing.T) {
	w := newWorld(t, 32)
	for y := 6; y < 11; y++ {
		for x := 4; x < 13; x++ {
			w.grid.Set(image.Pt(x, y), grid.NewPixel(material.Rock, nil))
		}
	}
	got := w.TraceBoundary(image.Pt(8, 8))
	want := []image.Point{{4, 6}, {13, 6}, {13, 11}, {4, 11}}
	if len(got) != len(want) {
		t.Fatalf("outline = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outline = %v, want %v", got, want)
		}
	}
	if a := boundary.Area(got); a != 45 {
		t.Fatalf("outline area = %v, want 45", a)
	}
	if w.TraceBoundary(image.Pt(1, 1)) != nil {
		t.Fatal("empty seed should have no outline")
	}
}

func TestRestoreReplacesPixelsAndWakesAll(t *testing.T) {
	w := newWorld(t, 32)
	w.Step()
	w.Step()

	pixels := make([]grid.Pixel, 32*32)
	for i := range pixels {
		pixels[i] = grid.Empty()
	}
	pixels[5] = grid.NewPixel(material.Coal, nil)
	if err := w.Restore(pixels, 77); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if w.Frame() != 77 {
		t.Fatalf("frame = %d, want 77", w.Frame())
	}
	if got := w.Grid().Get(image.Pt(5, 0)).Material; got != material.Coal {
		t.Fatalf("restored pixel = %v", got)
	}
	for cy := 0; cy < 2; cy++ {
		for cx := 0; cx < 2; cx++ {
			if !w.Grid().Chunk(image.Pt(cx, cy)).ActiveNext {
				t.Fatalf("Restore should wake chunk (%d,%d)", cx, cy)
			}
		}
	}
	w.Step()
	if got := w.Stats().AwakeChunks; got != 4 {
		t.Fatalf("every chunk should be processed after Restore, got %d", got)
	}
	if err := w.Restore(pixels[:10], 0); err == nil {
		t.Fatal("expected an error for a short pixel array")
	}
}

func TestRegisteredSimFactory(t *testing.T) {
	sim, err := core.New("sandfall", map[string]string{"size": "32"})
	if err != nil {
		t.Fatalf("core.New: %v", err)
	}
	w, ok := sim.(*World)
	if !ok {
		t.Fatalf("unexpected sim type %T", sim)
	}
	if w.Size().W != 32 || w.Name() != "sandfall" {
		t.Fatalf("unexpected sim %s of size %+v", w.Name(), w.Size())
	}
	if _, ok := sim.(core.RGBAProvider); !ok {
		t.Fatal("sandfall should paint RGBA frames")
	}
}

func TestFloatParametersKeepExplosionBandOrdered(t *testing.T) {
	w := newWorld(t, 16)
	if !w.SetFloatParameter("explosion_min_radius", 20) {
		t.Fatal("explosion_min_radius should be settable")
	}
	d := w.ExplosionDescriptor()
	if d.MinRadius != 20 || d.MaxRadius != 20 {
		t.Fatalf("raising min past max should drag max along: %+v", d)
	}
	w.SetFloatParameter("explosion_max_radius", 5)
	if d = w.ExplosionDescriptor(); d.MinRadius != 5 || d.MaxRadius != 5 {
		t.Fatalf("lowering max below min should drag min along: %+v", d)
	}
	if w.SetFloatParameter("time_step", 0) {
		t.Fatal("non-positive time step must be rejected")
	}
	if w.SetFloatParameter("nope", 1) || w.SetIntParameter("nope", 1) {
		t.Fatal("unknown keys must be rejected")
	}
	w.SetFloatParameter("gravity_y", -2)
	if w.Config().Params.GravityY != -2 {
		t.Fatalf("gravity_y = %v", w.Config().Params.GravityY)
	}
}

func TestParametersSnapshotGroups(t *testing.T) {
	w := newWorld(t, 32)
	snap := w.Parameters()
	if len(snap.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(snap.Groups))
	}
	found := false
	for _, p := range snap.Groups[0].Params {
		if p.Key == "size" && p.Value == "32" {
			found = true
		}
	}
	if !found {
		t.Fatalf("world group should report the size: %+v", snap.Groups[0])
	}
	if len(w.ParameterControls()) == 0 {
		t.Fatal("expected HUD controls")
	}
}

func TestFillRGBAProducesOpaqueFrame(t *testing.T) {
	w := newWorld(t, 16)
	w.Set(image.Pt(3, 3), material.Titanium)
	buf := make([]byte, 16*16*4)
	w.FillRGBA(buf)
	i := (3*16 + 3) * 4
	c := material.Props(material.Titanium).Color
	if buf[i] != c.R || buf[i+1] != c.G || buf[i+2] != c.B || buf[i+3] != 255 {
		t.Fatalf("titanium pixel = %v", buf[i:i+4])
	}
}
