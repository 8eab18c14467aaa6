package main

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Oliver-Form/fortune/game/world"
)

// writeMapFile writes tile values in the binary map file format, optionally
// followed by extra raw bytes.
func writeMapFile(t *testing.T, values []uint16, extra ...byte) string {
	t.Helper()
	buf := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	buf = append(buf, extra...)
	path := filepath.Join(t.TempDir(), "test.map")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("error writing map file: %v", err)
	}
	return path
}

func TestReadTiles(t *testing.T) {
	path := writeMapFile(t, []uint16{0, 1, 2, 3, 4, 9})
	tiles, err := readTiles(path)
	if err != nil {
		t.Fatalf("error reading tiles: %v", err)
	}
	want := []world.TileType{world.Grass, world.Water, world.Desert, world.Stone, world.Wood, world.Unknown}
	if len(tiles) != len(want) {
		t.Fatalf("read %v tiles, expected %v", len(tiles), len(want))
	}
	for i, tile := range want {
		if tiles[i] != tile {
			t.Errorf("tile %v = %v, expected %v", i, tiles[i], tile)
		}
	}
}

func TestReadTilesTrailingByte(t *testing.T) {
	path := writeMapFile(t, []uint16{0, 1, 2}, 0xab)
	tiles, err := readTiles(path)
	if err != nil {
		t.Fatalf("error reading tiles with a trailing byte: %v", err)
	}
	if len(tiles) != 3 {
		t.Fatalf("read %v tiles, expected the trailing byte to be dropped", len(tiles))
	}
}

func TestReadTilesMissingFile(t *testing.T) {
	if _, err := readTiles(filepath.Join(t.TempDir(), "missing.map")); err == nil {
		t.Fatal("no error reading a missing file")
	}
}

func TestPrintHistogram(t *testing.T) {
	tiles := make([]world.TileType, 0, 1025)
	for i := 0; i < 1000; i++ {
		tiles = append(tiles, world.Grass)
	}
	for i := 0; i < 24; i++ {
		tiles = append(tiles, world.Water)
	}
	// An out-of-range value counts under Unknown, not under a real type.
	tiles = append(tiles, world.TileFromUint16(999))

	var buf bytes.Buffer
	printHistogram(&buf, tiles)
	out := buf.String()

	for _, want := range []string{
		"Grassland: 1,000 tiles (97.56%)",
		"Water: 24 tiles (2.34%)",
		"Unknown: 1 tiles (0.10%)",
		"Total: 1,025 tiles",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("histogram output %q lacks %q", out, want)
		}
	}
	// Types that never occur are left out entirely.
	for _, absent := range []string{"Desert", "Stone", "Wood"} {
		if strings.Contains(out, absent) {
			t.Errorf("histogram output lists %v, which has no tiles", absent)
		}
	}
}

func TestWriteImage(t *testing.T) {
	tiles := []world.TileType{world.Grass, world.Water, world.Desert, world.Stone}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writeImage(tiles, 2, path); err != nil {
		t.Fatalf("error writing image: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("error opening image: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("error decoding image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("image is %vx%v, expected 2x2", b.Dx(), b.Dy())
	}
	for i, tile := range tiles {
		r, g, b, _ := img.At(i%2, i/2).RGBA()
		rgb := tile.RGB()
		if uint8(r>>8) != rgb[0] || uint8(g>>8) != rgb[1] || uint8(b>>8) != rgb[2] {
			t.Errorf("pixel %v is (%v, %v, %v), expected %v", i, r>>8, g>>8, b>>8, rgb)
		}
	}
}
