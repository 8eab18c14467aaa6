// Command map2png renders a Fortune map file to a PNG image, one pixel per
// tile, and prints a histogram of the tile types it contains. It consumes
// the exact tile encoding the game loads, so an image produced here matches
// what the streaming world renders.
//
// Usage:
//
//	map2png [-width n] <input.map> [output.png]
package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/Oliver-Form/fortune/game/world"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var width = flag.Int("width", 4096, "width of the map in tiles")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 || *width <= 0 {
		fmt.Fprintln(os.Stderr, "usage: map2png [-width n] <input.map> [output.png]")
		os.Exit(2)
	}
	input := args[0]
	output := strings.TrimSuffix(input, ".map") + ".png"
	if len(args) >= 2 {
		output = args[1]
	}

	tiles, err := readTiles(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "map2png:", err)
		os.Exit(1)
	}
	if len(tiles) == 0 {
		fmt.Fprintln(os.Stderr, "map2png: map file holds no tiles")
		os.Exit(1)
	}
	if len(tiles)%*width != 0 {
		fmt.Fprintf(os.Stderr, "map2png: warning: %v tiles do not fill a %v-wide map evenly\n", len(tiles), *width)
	}

	printHistogram(os.Stdout, tiles)

	if err := writeImage(tiles, *width, output); err != nil {
		fmt.Fprintln(os.Stderr, "map2png:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %v\n", output)
}

// readTiles decodes all little-endian uint16 tile values from the file at
// path. A trailing odd byte is ignored with a warning, matching the
// tolerance of the game's own loader.
func readTiles(path string) ([]world.TileType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tiles []world.TileType
	br := bufio.NewReader(f)
	var buf [2]byte
	for {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				fmt.Fprintln(os.Stderr, "map2png: warning: trailing byte ignored")
			} else if !errors.Is(err, io.EOF) {
				return nil, err
			}
			return tiles, nil
		}
		tiles = append(tiles, world.TileFromUint16(binary.LittleEndian.Uint16(buf[:])))
	}
}

// histogramOrder fixes the order tile types are reported in.
var histogramOrder = []world.TileType{
	world.Grass, world.Water, world.Desert, world.Stone, world.Wood, world.Unknown,
}

func printHistogram(w io.Writer, tiles []world.TileType) {
	counts := make(map[world.TileType]int)
	for _, t := range tiles {
		counts[t]++
	}

	p := message.NewPrinter(language.English)
	p.Fprintln(w, "Tile statistics:")
	for _, t := range histogramOrder {
		n := counts[t]
		if n == 0 {
			continue
		}
		pct := float64(n) / float64(len(tiles)) * 100
		p.Fprintf(w, "  %v: %d tiles (%.2f%%)\n", t.Name(), n, pct)
	}
	p.Fprintf(w, "Total: %d tiles\n", len(tiles))
}

func writeImage(tiles []world.TileType, width int, path string) error {
	height := (len(tiles) + width - 1) / width
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, t := range tiles {
		rgb := t.RGB()
		img.Set(i%width, i/width, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
