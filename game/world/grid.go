package world

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// TileGrid holds the full backing map of the world: one TileType per tile,
// stored in row-major order. A TileGrid is constructed once at startup, from
// a map file or synthetically, and is read-only afterwards. Because it holds
// no mutable state, it may be read from any number of goroutines at once.
type TileGrid struct {
	w, h  int
	tiles []TileType
}

// NewTileGrid returns a uniform synthetic grid of the dimensions passed, with
// every tile set to fill. Non-positive dimensions yield an empty grid whose
// every position reads as Unknown.
func NewTileGrid(w, h int, fill TileType) *TileGrid {
	if w <= 0 || h <= 0 {
		return &TileGrid{}
	}
	g := &TileGrid{w: w, h: h, tiles: make([]TileType, w*h)}
	if fill != 0 {
		for i := range g.tiles {
			g.tiles[i] = fill
		}
	}
	return g
}

// ReadTileGrid reads a tile grid of the dimensions passed from r. The stream
// holds little-endian uint16 tile values in row-major order, x varying
// fastest. Reading stops after w*h values or at the end of the stream,
// whichever comes first: a truncated stream is not an error, the tiles that
// were read are kept and the missing remainder reads as Unknown.
func ReadTileGrid(r io.Reader, w, h int) (*TileGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("tile grid: invalid dimensions %vx%v", w, h)
	}
	g := &TileGrid{w: w, h: h, tiles: make([]TileType, 0, w*h)}

	br := bufio.NewReader(r)
	var buf [2]byte
	for len(g.tiles) < w*h {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("tile grid: read: %w", err)
		}
		g.tiles = append(g.tiles, TileFromUint16(binary.LittleEndian.Uint16(buf[:])))
	}
	return g, nil
}

// LoadTileGrid loads a tile grid of the dimensions passed from the map file
// at path. Load problems are never fatal: non-positive dimensions yield an
// empty grid, if the file cannot be opened, a uniform Grass grid is returned
// instead, and if the file size does not match the dimensions, the partial
// data read is kept. Each case emits a warning through log.
func LoadTileGrid(path string, w, h int, log *slog.Logger) *TileGrid {
	if log == nil {
		log = slog.Default()
	}
	if w <= 0 || h <= 0 {
		log.Warn("tile grid: invalid dimensions, world is empty", "width", w, "height", h)
		return &TileGrid{}
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warn("tile grid: map file could not be opened, generating default world", "path", path, "err", err)
		return NewTileGrid(w, h, Grass)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		if want := int64(w) * int64(h) * 2; info.Size() != want {
			log.Warn("tile grid: map file size mismatch, loading partial data", "path", path, "size", info.Size(), "expected", want)
		}
	}
	g, err := ReadTileGrid(f, w, h)
	if err != nil {
		log.Warn("tile grid: map file could not be read, generating default world", "path", path, "err", err)
		return NewTileGrid(w, h, Grass)
	}
	return g
}

// Width returns the width of the grid in tiles.
func (g *TileGrid) Width() int {
	return g.w
}

// Height returns the height of the grid in tiles.
func (g *TileGrid) Height() int {
	return g.h
}

// Loaded returns the number of tiles actually populated. It is smaller than
// Width()*Height() when the grid was loaded from a truncated map file.
func (g *TileGrid) Loaded() int {
	return len(g.tiles)
}

// At returns the tile at the world tile coordinates passed. Coordinates
// outside [0,Width)x[0,Height), and coordinates whose backing data was not
// populated from a truncated file, return Unknown. At never panics.
func (g *TileGrid) At(x, y int) TileType {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return Unknown
	}
	i := y*g.w + x
	if i >= len(g.tiles) {
		return Unknown
	}
	return g.tiles[i]
}
