// Package sandfall implements the falling-sand world: the per-frame update
// engine over a chunked pixel grid, plus the command surface used by the GUI,
// the terminal viewer and the headless tools.
package sandfall

import (
	"fmt"

	"sandfall/internal/core"
	"sandfall/internal/grid"
	pcore "sandfall/pkg/core"
)

// FrameStats summarises the most recent simulated frame.
type FrameStats struct {
	Frame       uint64
	Updated     int
	AwakeChunks int
}

// World owns the grid and the random source. It is not safe for concurrent
// use; callers serialise Step and every command.
type World struct {
	cfg Config

	grid *grid.Grid
	rng  *pcore.RNG

	frame uint64
	stats FrameStats
}

// New returns a world of the given size using the default configuration.
func New(size int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Size = size
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. The
// configuration is normalised first; construction only fails when the grid
// itself cannot be built.
func NewWithConfig(cfg Config) (*World, error) {
	cfg = cfg.Normalize()
	g, err := grid.New(cfg.Size, cfg.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("sandfall: %w", err)
	}
	return &World{
		cfg:  cfg,
		grid: g,
		rng:  pcore.NewRNG(cfg.Seed),
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sandfall" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.Size(), H: w.grid.Size()} }

// Grid exposes the pixel grid for rendering, persistence and diagnostics.
func (w *World) Grid() *grid.Grid { return w.grid }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Frame returns the number of frames simulated since the last reset.
func (w *World) Frame() uint64 { return w.frame }

// Stats returns the summary of the last frame.
func (w *World) Stats() FrameStats { return w.stats }

// Reset clears the world and reseeds the random source. A zero seed selects
// the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Seed(effective)
	w.grid.Fill(grid.Empty())
	w.grid.WakeAll()
	w.frame = 0
	w.stats = FrameStats{}
}

func init() {
	core.Register("sandfall", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
