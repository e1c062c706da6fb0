package sandfall

import (
	"fmt"
	"slices"

	"sandfall/internal/grid"
	"sandfall/internal/snapshot"
)

// Snapshot captures a copy of the current pixels and frame counter.
func (w *World) Snapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Header: snapshot.Header{
			Version:   snapshot.Version,
			Size:      w.grid.Size(),
			ChunkSize: w.grid.ChunkSize(),
			Frame:     w.frame,
			Seed:      w.cfg.Seed,
		},
		Pixels: slices.Clone(w.grid.Pixels()),
	}
}

// RestoreSnapshot loads snap into the world. The snapshot must match the
// world size; the chunk size may differ.
func (w *World) RestoreSnapshot(snap snapshot.Snapshot) error {
	if snap.Header.Size != w.grid.Size() {
		return fmt.Errorf("%w: snapshot is %d wide, world is %d", grid.ErrSizeMismatch, snap.Header.Size, w.grid.Size())
	}
	return w.Restore(snap.Pixels, snap.Header.Frame)
}

// Save writes the world to path.
func (w *World) Save(path string) error {
	if err := snapshot.Write(path, w.Snapshot()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load replaces the world with the snapshot stored at path.
func (w *World) Load(path string) error {
	snap, err := snapshot.Read(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := w.RestoreSnapshot(snap); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
