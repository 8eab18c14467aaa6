package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a single batched triangle-list surface. All quads emitted for a
// chunk share one vertex and index buffer so that the rendering collaborator
// can submit the whole chunk in a single draw call, regardless of how many
// tiles it contains. Colouring is per-vertex: the material a Mesh is rendered
// with must not tint it with a separate base colour.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colours   []mgl32.Vec4
	Indices   []uint32
}

// up is the normal shared by all tile quads.
var up = mgl32.Vec3{0, 1, 0}

// BuildChunkMesh builds the renderable surface of a chunk. Every tile except
// Water emits one unit quad at height 0 in the local XZ plane, with upward
// normals, UVs spanning the quad and all four vertices coloured by the tile
// type. Water emits nothing; it is implicitly background. BuildChunkMesh
// returns nil if no tile of the chunk emits geometry. The viewer must still
// register a placeholder entity for such chunks so they can be tracked and
// evicted like any other.
func BuildChunkMesh(c *ChunkData) *Mesh {
	m := &Mesh{}
	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			t := c.tiles[lz][lx]
			if t == Water {
				continue
			}
			x, z := float32(lx)*TileSize, float32(lz)*TileSize
			m.face(
				mgl32.Vec3{x, 0, z},
				mgl32.Vec3{x + TileSize, 0, z},
				mgl32.Vec3{x + TileSize, 0, z + TileSize},
				mgl32.Vec3{x, 0, z + TileSize},
				up, t.Colour(),
			)
		}
	}
	if len(m.Positions) == 0 {
		return nil
	}
	return m
}

const (
	// borderThickness is the width of the border overlay boxes.
	borderThickness float32 = 0.05
	// borderHeight lifts the border overlay slightly above the tile plane so
	// it does not z-fight with coplanar tile quads.
	borderHeight float32 = 0.01
)

var borderColour = mgl32.Vec4{0, 0, 0, 1}

// BuildChunkBorder builds the debug border overlay of a chunk: four thin
// boxes along the chunk's four edges, slightly above the tile plane. The
// overlay is local to the chunk origin, like the chunk mesh itself.
func BuildChunkBorder() *Mesh {
	m := &Mesh{}
	l := float32(ChunkSize * TileSize)
	t := borderThickness
	y0, y1 := borderHeight-t/2, borderHeight+t/2

	// North, south, west and east edges.
	m.box(mgl32.Vec3{0, y0, -t / 2}, mgl32.Vec3{l, y1, t / 2}, borderColour)
	m.box(mgl32.Vec3{0, y0, l - t/2}, mgl32.Vec3{l, y1, l + t/2}, borderColour)
	m.box(mgl32.Vec3{-t / 2, y0, 0}, mgl32.Vec3{t / 2, y1, l}, borderColour)
	m.box(mgl32.Vec3{l - t/2, y0, 0}, mgl32.Vec3{l + t/2, y1, l}, borderColour)
	return m
}

// face appends a quad to the mesh. The corners a, b, c and d must be passed
// going around the quad such that the triangles (a,c,b) and (a,d,c) face the
// normal n. All four vertices share the normal and the colour; UVs span the
// quad.
func (m *Mesh) face(a, b, c, d, n mgl32.Vec3, colour mgl32.Vec4) {
	i := uint32(len(m.Positions))
	m.Positions = append(m.Positions, a, b, c, d)
	m.Normals = append(m.Normals, n, n, n, n)
	m.UVs = append(m.UVs, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1})
	m.Colours = append(m.Colours, colour, colour, colour, colour)
	m.Indices = append(m.Indices, i, i+2, i+1, i, i+3, i+2)
}

// box appends an axis-aligned box spanning min to max, all faces wound
// outwards.
func (m *Mesh) box(min, max mgl32.Vec3, colour mgl32.Vec4) {
	x0, y0, z0 := min[0], min[1], min[2]
	x1, y1, z1 := max[0], max[1], max[2]

	m.face(mgl32.Vec3{x0, y1, z0}, mgl32.Vec3{x1, y1, z0}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x0, y1, z1}, mgl32.Vec3{0, 1, 0}, colour)
	m.face(mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{0, -1, 0}, colour)
	m.face(mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x0, y1, z0}, mgl32.Vec3{x1, y1, z0}, mgl32.Vec3{0, 0, -1}, colour)
	m.face(mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x0, y1, z1}, mgl32.Vec3{0, 0, 1}, colour)
	m.face(mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x0, y1, z1}, mgl32.Vec3{x0, y1, z0}, mgl32.Vec3{-1, 0, 0}, colour)
	m.face(mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x1, y1, z0}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{1, 0, 0}, colour)
}
