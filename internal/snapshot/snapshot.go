// Package snapshot saves and restores the full pixel array of a world. A
// file is a zstd stream holding one JSON header line followed by the
// gob-encoded pixels.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"sandfall/internal/grid"
)

// Version is the current file format version.
const Version = 1

// DefaultPath is the quick-save slot used by the GUI.
const DefaultPath = "save0.snap"

// ErrVersion is returned for files written in an unknown format version.
var ErrVersion = errors.New("snapshot: unsupported version")

// Header describes the saved world. It is readable without decoding the pixels.
type Header struct {
	Version   int    `json:"version"`
	Size      int    `json:"size"`
	ChunkSize int    `json:"chunk_size"`
	Frame     uint64 `json:"frame"`
	Seed      int64  `json:"seed"`
}

// Snapshot is a header plus the row-major pixel array.
type Snapshot struct {
	Header Header
	Pixels []grid.Pixel
}

// Write stores snap at path, creating parent directories as needed.
func Write(path string, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes snap to w in the file format. The header version is always
// set to Version.
func Encode(w io.Writer, snap Snapshot) error {
	if n := snap.Header.Size * snap.Header.Size; n != len(snap.Pixels) {
		return fmt.Errorf("%w: header says %d, have %d", grid.ErrSizeMismatch, n, len(snap.Pixels))
	}
	snap.Header.Version = Version
	return encode(w, snap)
}

func encode(w io.Writer, snap Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, err := json.Marshal(snap.Header)
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(snap.Pixels); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read loads the snapshot stored at path.
func Read(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a snapshot from r and validates its version and dimensions.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("snapshot header: %w", err)
	}
	if err := json.Unmarshal(line, &snap.Header); err != nil {
		return snap, fmt.Errorf("snapshot header: %w", err)
	}
	if snap.Header.Version != Version {
		return snap, fmt.Errorf("%w: %d", ErrVersion, snap.Header.Version)
	}
	if err := gob.NewDecoder(br).Decode(&snap.Pixels); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	if n := snap.Header.Size * snap.Header.Size; n != len(snap.Pixels) {
		return snap, fmt.Errorf("%w: header says %d, file has %d", grid.ErrSizeMismatch, n, len(snap.Pixels))
	}
	return snap, nil
}

// ReadHeader returns only the header of the snapshot at path.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return Header{}, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return Header{}, fmt.Errorf("snapshot header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return Header{}, fmt.Errorf("snapshot header: %w", err)
	}
	return h, nil
}
