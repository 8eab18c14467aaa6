package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TileType identifies the terrain type of a single tile in the world grid.
// Tile types are closed: values decoded from a map file that fall outside the
// known range map to Unknown, never to one of the real types.
type TileType uint16

const (
	// Grass is the default grassland tile.
	Grass TileType = iota
	// Water is open water. Water tiles emit no geometry when a chunk mesh is
	// built and never receive decorations.
	Water
	// Desert is dry sand terrain.
	Desert
	// Stone is bare rock terrain.
	Stone
	// Wood is forested terrain.
	Wood

	// Unknown is the fallback for any tile value outside the known range and
	// for positions outside the bounds of the grid. It is rendered in a
	// deliberately loud colour so that decode problems are visually obvious.
	Unknown TileType = 0xffff
)

// TileFromUint16 decodes a tile value read from a map file. Values 0-4 map to
// the five real tile types; any other value maps to Unknown. Out-of-range
// values are expected input, not an error: newer map files may carry tile
// codes this version does not know.
func TileFromUint16(v uint16) TileType {
	if v <= uint16(Wood) {
		return TileType(v)
	}
	return Unknown
}

// Uint16 returns the canonical encoding of the tile type in the map file
// format. Unknown encodes to 0xffff, which decodes back to Unknown.
func (t TileType) Uint16() uint16 {
	return uint16(t)
}

// Name returns the display name of the tile type.
func (t TileType) Name() string {
	switch t {
	case Grass:
		return "Grassland"
	case Water:
		return "Water"
	case Desert:
		return "Desert"
	case Stone:
		return "Stone"
	case Wood:
		return "Wood"
	}
	return "Unknown"
}

// String returns the display name of the tile type. It implements
// fmt.Stringer so tile types read well in log output.
func (t TileType) String() string {
	return t.Name()
}

// Colour returns the fixed RGBA vertex colour of the tile type, used by the
// chunk mesh builder for per-vertex colouring.
func (t TileType) Colour() mgl32.Vec4 {
	switch t {
	case Grass:
		return mgl32.Vec4{0.1, 0.8, 0.1, 1}
	case Water:
		return mgl32.Vec4{0.1, 0.1, 0.8, 1}
	case Desert:
		return mgl32.Vec4{0.8, 0.7, 0.4, 1}
	case Stone:
		return mgl32.Vec4{0.5, 0.5, 0.5, 1}
	case Wood:
		return mgl32.Vec4{0.6, 0.3, 0.1, 1}
	}
	// Bright magenta for unknown tiles.
	return mgl32.Vec4{1, 0, 1, 1}
}

// RGB returns the fixed pixel colour of the tile type used when rendering a
// map file to an image.
func (t TileType) RGB() [3]uint8 {
	switch t {
	case Grass:
		return [3]uint8{34, 139, 34}
	case Water:
		return [3]uint8{30, 144, 255}
	case Desert:
		return [3]uint8{238, 203, 173}
	case Stone:
		return [3]uint8{128, 128, 128}
	case Wood:
		return [3]uint8{139, 69, 19}
	}
	return [3]uint8{255, 0, 255}
}
