package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// ChunkSize is the width and length of a chunk in tiles. Chunks are the
	// unit of streaming granularity: they are built and released whole.
	ChunkSize = 16
	// TileSize is the width of a single tile in world units.
	TileSize = 1.0
)

// ChunkPos holds the position of a chunk in chunk-space. The first value is
// the X coordinate of the chunk, the second the Z coordinate. Chunk-space
// coordinates are world tile coordinates divided by ChunkSize, rounded down.
type ChunkPos [2]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int32 {
	return p[1]
}

// String implements fmt.Stringer.
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%v, %v)", p[0], p[1])
}

// ChunkPosFromVec3 returns the position of the chunk that the world-space
// position passed falls in.
func ChunkPosFromVec3(pos mgl64.Vec3) ChunkPos {
	return ChunkPos{
		int32(math.Floor(pos[0] / (ChunkSize * TileSize))),
		int32(math.Floor(pos[2] / (ChunkSize * TileSize))),
	}
}

// ChunkData holds a fixed ChunkSize x ChunkSize block of tiles cut out of the
// world grid, with the local origin at the chunk's north-west tile. ChunkData
// is derived entirely from the grid and the chunk position and is never
// mutated after creation: decomposing the same chunk twice yields identical
// data.
type ChunkData struct {
	pos   ChunkPos
	tiles [ChunkSize][ChunkSize]TileType
}

// DecomposeChunk cuts the chunk at the position passed out of the grid. It
// always succeeds: tiles outside the bounds of the grid resolve to Unknown,
// so chunks at the edge of the map need no special casing.
func DecomposeChunk(g *TileGrid, pos ChunkPos) *ChunkData {
	c := &ChunkData{pos: pos}
	startX, startZ := int(pos[0])*ChunkSize, int(pos[1])*ChunkSize
	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			c.tiles[lz][lx] = g.At(startX+lx, startZ+lz)
		}
	}
	return c
}

// Pos returns the chunk-space position of the chunk.
func (c *ChunkData) Pos() ChunkPos {
	return c.pos
}

// At returns the tile at the local offsets passed. Offsets outside
// [0,ChunkSize) return Unknown.
func (c *ChunkData) At(lx, lz int) TileType {
	if lx < 0 || lx >= ChunkSize || lz < 0 || lz >= ChunkSize {
		return Unknown
	}
	return c.tiles[lz][lx]
}

// Origin returns the world-space position of the chunk's north-west corner.
// Mesh geometry and border overlays built for the chunk are local to this
// origin.
func (c *ChunkData) Origin() mgl64.Vec3 {
	return mgl64.Vec3{
		float64(c.pos[0]) * ChunkSize * TileSize,
		0,
		float64(c.pos[1]) * ChunkSize * TileSize,
	}
}
