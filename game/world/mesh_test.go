package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBuildChunkMeshBatchesTiles(t *testing.T) {
	g := NewTileGrid(ChunkSize, ChunkSize, Grass)
	m := BuildChunkMesh(DecomposeChunk(g, ChunkPos{0, 0}))
	if m == nil {
		t.Fatal("grass chunk built no mesh")
	}
	const quads = ChunkSize * ChunkSize
	if len(m.Positions) != quads*4 {
		t.Errorf("mesh holds %v vertices, expected %v", len(m.Positions), quads*4)
	}
	if len(m.Indices) != quads*6 {
		t.Errorf("mesh holds %v indices, expected %v", len(m.Indices), quads*6)
	}
	if len(m.Normals) != len(m.Positions) || len(m.UVs) != len(m.Positions) || len(m.Colours) != len(m.Positions) {
		t.Errorf("vertex attribute counts diverge: %v normals, %v uvs, %v colours for %v positions",
			len(m.Normals), len(m.UVs), len(m.Colours), len(m.Positions))
	}
}

func TestBuildChunkMeshSkipsWater(t *testing.T) {
	g := NewTileGrid(ChunkSize, ChunkSize, Grass)
	g.tiles[0] = Water
	g.tiles[1] = Water
	m := BuildChunkMesh(DecomposeChunk(g, ChunkPos{0, 0}))
	const quads = ChunkSize*ChunkSize - 2
	if len(m.Positions) != quads*4 {
		t.Errorf("mesh holds %v vertices, expected %v", len(m.Positions), quads*4)
	}
}

func TestBuildChunkMeshWaterOnly(t *testing.T) {
	g := NewTileGrid(ChunkSize, ChunkSize, Water)
	if m := BuildChunkMesh(DecomposeChunk(g, ChunkPos{0, 0})); m != nil {
		t.Errorf("water-only chunk built a mesh with %v vertices", len(m.Positions))
	}
}

func TestBuildChunkMeshQuadLayout(t *testing.T) {
	g := NewTileGrid(ChunkSize, ChunkSize, Desert)
	m := BuildChunkMesh(DecomposeChunk(g, ChunkPos{0, 0}))

	// The first quad covers the tile at local (0, 0).
	wantPos := []mgl32.Vec3{{0, 0, 0}, {TileSize, 0, 0}, {TileSize, 0, TileSize}, {0, 0, TileSize}}
	for i, want := range wantPos {
		if m.Positions[i] != want {
			t.Errorf("vertex %v at %v, expected %v", i, m.Positions[i], want)
		}
	}
	wantUV := []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, want := range wantUV {
		if m.UVs[i] != want {
			t.Errorf("vertex %v uv %v, expected %v", i, m.UVs[i], want)
		}
	}
	for i := 0; i < 4; i++ {
		if m.Normals[i] != up {
			t.Errorf("vertex %v normal %v, expected %v", i, m.Normals[i], up)
		}
		if m.Colours[i] != Desert.Colour() {
			t.Errorf("vertex %v colour %v, expected %v", i, m.Colours[i], Desert.Colour())
		}
	}
}

func TestBuildChunkMeshWinding(t *testing.T) {
	g := NewTileGrid(ChunkSize, ChunkSize, Stone)
	m := BuildChunkMesh(DecomposeChunk(g, ChunkPos{0, 0}))

	// Each quad is two triangles with the same winding, offset by its base
	// vertex.
	pattern := []uint32{0, 2, 1, 0, 3, 2}
	for q := 0; q < len(m.Indices)/6; q++ {
		base := uint32(q * 4)
		for i, p := range pattern {
			if got := m.Indices[q*6+i]; got != base+p {
				t.Fatalf("quad %v index %v is %v, expected %v", q, i, got, base+p)
			}
		}
	}
}

func TestBuildChunkMeshColoursPerTile(t *testing.T) {
	g := NewTileGrid(ChunkSize, ChunkSize, Grass)
	g.tiles[3] = Stone
	m := BuildChunkMesh(DecomposeChunk(g, ChunkPos{0, 0}))

	// Quads are emitted row-major, so the fourth quad is the stone tile.
	for i := 12; i < 16; i++ {
		if m.Colours[i] != Stone.Colour() {
			t.Errorf("vertex %v colour %v, expected %v", i, m.Colours[i], Stone.Colour())
		}
	}
	if m.Colours[0] != Grass.Colour() {
		t.Errorf("vertex 0 colour %v, expected %v", m.Colours[0], Grass.Colour())
	}
}

func TestBuildChunkBorder(t *testing.T) {
	m := BuildChunkBorder()
	if m == nil {
		t.Fatal("no border mesh built")
	}
	// Four boxes of six quads each.
	const quads = 4 * 6
	if len(m.Positions) != quads*4 {
		t.Errorf("border holds %v vertices, expected %v", len(m.Positions), quads*4)
	}
	if len(m.Indices) != quads*6 {
		t.Errorf("border holds %v indices, expected %v", len(m.Indices), quads*6)
	}
	for i, c := range m.Colours {
		if c != borderColour {
			t.Fatalf("vertex %v colour %v, expected %v", i, c, borderColour)
		}
	}
}
