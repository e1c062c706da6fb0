package sandfall

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromMapOverridesDefaults(t *testing.T) {
	cfg := FromMap(map[string]string{
		"size":         "64",
		"chunk_size":   "8",
		"seed":         "42",
		"gravity_y":    "-4.5",
		"brush_radius": "3",
		"time_step":    "bogus",
	})
	if cfg.Size != 64 || cfg.ChunkSize != 8 || cfg.Seed != 42 {
		t.Fatalf("unexpected world config: %+v", cfg)
	}
	if cfg.Params.GravityY != -4.5 || cfg.Params.BrushRadius != 3 {
		t.Fatalf("unexpected params: %+v", cfg.Params)
	}
	if cfg.Params.TimeStep != DefaultConfig().Params.TimeStep {
		t.Fatalf("unparsable values must keep the default, got %v", cfg.Params.TimeStep)
	}
	if got := FromMap(nil); got != DefaultConfig() {
		t.Fatalf("nil map should give the defaults, got %+v", got)
	}
}

func TestNormalizeRepairsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 100
	cfg.ChunkSize = 16
	cfg.Params.ExplosionMinRadius = 10
	cfg.Params.ExplosionMaxRadius = 4
	cfg.Params.ExplosionScorch = -2
	cfg.Params.BrushRadius = -1

	got := cfg.Normalize()
	if got.Size != 112 {
		t.Fatalf("size should round up to a whole number of chunks, got %d", got.Size)
	}
	if got.Params.ExplosionMaxRadius != 10 {
		t.Fatalf("explosion band should stay ordered, got max %v", got.Params.ExplosionMaxRadius)
	}
	if got.Params.ExplosionScorch != 0 || got.Params.BrushRadius != 0 {
		t.Fatalf("negative tunables should clamp to zero: %+v", got.Params)
	}

	cfg = DefaultConfig()
	cfg.ChunkSize = 0
	cfg.Size = 0
	got = cfg.Normalize()
	if got.ChunkSize != 16 || got.Size != 16 {
		t.Fatalf("zero sizes should fall back to one default chunk, got %d/%d", got.Size, got.ChunkSize)
	}
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandfall.yaml")
	body := "size: 48\nchunk_size: 16\nseed: 9\ngravity_y: 3\nexplosion_scorch: 1.5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Size != 48 || cfg.Seed != 9 || cfg.Params.GravityY != 3 || cfg.Params.ExplosionScorch != 1.5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Params.BrushRadius != DefaultConfig().Params.BrushRadius {
		t.Fatalf("missing keys should keep defaults, got brush %d", cfg.Params.BrushRadius)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("size: [1, 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected a parse error for malformed yaml")
	}
}

func TestNewWithConfigRoundsSizeToChunks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 40
	cfg.ChunkSize = 16
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if w.Size().W != 48 || w.Grid().ChunksPerSide() != 3 {
		t.Fatalf("unexpected world geometry: size %d, chunks %d", w.Size().W, w.Grid().ChunksPerSide())
	}
}
