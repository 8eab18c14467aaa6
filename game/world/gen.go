package world

import (
	"github.com/aquilax/go-perlin"
	"github.com/segmentio/fasthash/fnv1a"
)

// Thresholds of the two synthetic terrain fields. Elevation picks the base
// terrain, moisture separates desert from grass and grass from woodland.
const (
	seaLevel = -0.25
	rockLine = 0.35
	dryLevel = -0.2
	wetLevel = 0.3
)

// Perlin parameters of the synthetic fields. The moisture field varies on a
// slightly larger scale than elevation so that biome bands cut across
// landmasses instead of following the coastline.
const (
	genAlpha   = 2.0
	genBeta    = 2.0
	genOctaves = 3

	elevationScale = 1.0 / 128
	moistureScale  = 1.0 / 192
)

// GenerateTileGrid synthesizes a tile grid of the dimensions passed from two
// Perlin noise fields. The result is a pure function of (seed, w, h):
// generating the same world twice yields identical grids. Tiles below sea
// level become Water, tiles above the rock line Stone; the remaining land is
// split into Desert, Wood and Grass by the moisture field. Non-positive
// dimensions yield an empty grid.
func GenerateTileGrid(seed int64, w, h int) *TileGrid {
	if w <= 0 || h <= 0 {
		return &TileGrid{}
	}
	elevation := perlin.NewPerlin(genAlpha, genBeta, genOctaves, seed)
	// The moisture field runs on a seed mixed from the elevation seed, so
	// that both fields stay decorrelated but reproducible from the single
	// configured seed.
	moisture := perlin.NewPerlin(genAlpha, genBeta, genOctaves, int64(fnv1a.HashUint64(uint64(seed))))

	g := &TileGrid{w: w, h: h, tiles: make([]TileType, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e := elevation.Noise2D(float64(x)*elevationScale, float64(y)*elevationScale)
			m := moisture.Noise2D(float64(x)*moistureScale, float64(y)*moistureScale)
			g.tiles[y*w+x] = classifyTile(e, m)
		}
	}
	return g
}

func classifyTile(elevation, moisture float64) TileType {
	switch {
	case elevation < seaLevel:
		return Water
	case elevation > rockLine:
		return Stone
	case moisture < dryLevel:
		return Desert
	case moisture > wetLevel:
		return Wood
	default:
		return Grass
	}
}
