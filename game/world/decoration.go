package world

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// DecorationKind identifies the kind of decoration placed on a tile.
type DecorationKind byte

const (
	// KindEnemy marks a hostile spawn. Enemies may appear on any tile type
	// except Water.
	KindEnemy DecorationKind = iota
	// KindCactus is the desert decoration.
	KindCactus
	// KindTree is the grassland decoration.
	KindTree
)

// String implements fmt.Stringer.
func (k DecorationKind) String() string {
	switch k {
	case KindEnemy:
		return "enemy"
	case KindCactus:
		return "cactus"
	case KindTree:
		return "tree"
	}
	return "unknown"
}

// Spawn heights of the decoration models, measured to their anchor point.
const (
	enemyHeight  = 0.9
	cactusHeight = 0.75
	treeHeight   = 1.0
)

// Decoration is a single placement produced for a chunk: a decoration kind at
// a world-space position. Placements are derived purely from the world
// coordinates of their tile, so rebuilding a chunk after it was evicted
// yields the exact same placements again. They are never stored.
type Decoration struct {
	Kind DecorationKind
	// Local holds the tile offsets of the placement within its chunk, x
	// before z.
	Local [2]int
	// Pos is the world-space position the decoration is anchored at.
	Pos mgl64.Vec3
}

// tileHash hashes the world tile coordinates passed to 64 bits. The hash
// depends on nothing but the coordinates: no clock, no counter, no RNG
// stream. This is what makes decoration placement stable across evictions
// and reloads of the same chunk.
func tileHash(wx, wz int) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(int64(wx)))
	binary.LittleEndian.PutUint64(b[8:], uint64(int64(wz)))
	return xxhash.Sum64(b[:])
}

// DecorateChunk derives the decoration placements of a chunk from its tile
// data. Each tile is evaluated independently against three bands of a
// positional hash: any non-water tile hosts an enemy on a 1-in-200 band,
// desert tiles host a cactus on a 1-in-50 band and grass tiles host a tree on
// a 1-in-100 band. The bands are independent, so an enemy and a biome
// decoration may share a tile. Water tiles receive nothing. Placements are
// returned in row-major tile order.
func DecorateChunk(c *ChunkData) []Decoration {
	var decorations []Decoration
	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			t := c.tiles[lz][lx]
			if t == Water {
				continue
			}
			wx := int(c.pos[0])*ChunkSize + lx
			wz := int(c.pos[1])*ChunkSize + lz
			h := tileHash(wx, wz)
			x, z := float64(wx)*TileSize, float64(wz)*TileSize

			if h%200 == 0 {
				decorations = append(decorations, Decoration{
					Kind: KindEnemy, Local: [2]int{lx, lz}, Pos: mgl64.Vec3{x, enemyHeight, z},
				})
			}
			switch t {
			case Desert:
				if h%50 == 0 {
					decorations = append(decorations, Decoration{
						Kind: KindCactus, Local: [2]int{lx, lz}, Pos: mgl64.Vec3{x, cactusHeight, z},
					})
				}
			case Grass:
				if h%100 == 0 {
					decorations = append(decorations, Decoration{
						Kind: KindTree, Local: [2]int{lx, lz}, Pos: mgl64.Vec3{x, treeHeight, z},
					})
				}
			}
		}
	}
	return decorations
}
