package snapshot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"sandfall/internal/grid"
	"sandfall/internal/material"
	"sandfall/pkg/core"
)

func samplePixels(size int) []grid.Pixel {
	rng := core.NewRNG(3)
	pixels := make([]grid.Pixel, size*size)
	all := material.All()
	for i := range pixels {
		pixels[i] = grid.NewPixel(all[rng.IntN(len(all))], rng)
		if i%7 == 0 {
			pixels[i].Velocity = grid.Vec2{X: 0.5, Y: -2}
			pixels[i].SetFlag(grid.FlagBurning, true)
		}
	}
	return pixels
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save0.snap")
	snap := Snapshot{
		Header: Header{Size: 16, ChunkSize: 8, Frame: 123, Seed: 42},
		Pixels: samplePixels(16),
	}
	if err := Write(path, snap); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Header.Version != Version || got.Header.Frame != 123 || got.Header.ChunkSize != 8 || got.Header.Seed != 42 {
		t.Fatalf("unexpected header %+v", got.Header)
	}
	if !slices.Equal(got.Pixels, snap.Pixels) {
		t.Fatal("pixels differ after round trip")
	}

	h, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h != got.Header {
		t.Fatalf("ReadHeader = %+v, want %+v", h, got.Header)
	}
}

func TestEncodeRejectsMismatchedPixels(t *testing.T) {
	snap := Snapshot{Header: Header{Size: 4}, Pixels: samplePixels(3)}
	var buf bytes.Buffer
	if err := Encode(&buf, snap); !errors.Is(err, grid.ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	snap := Snapshot{Header: Header{Version: Version + 1, Size: 2}, Pixels: samplePixels(2)}
	if err := encode(&buf, snap); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrVersion) {
		t.Fatalf("expected ErrVersion, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.snap")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
