package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ChunkView bundles everything the rendering collaborator needs to bring a
// chunk on screen: a parent spatial node at the chunk's world origin with the
// tile mesh, the optional border overlay and the decoration markers as its
// children.
type ChunkView struct {
	// Pos is the chunk-space position of the chunk.
	Pos ChunkPos
	// Origin is the world-space position of the parent node. All mesh and
	// border geometry is local to it.
	Origin mgl64.Vec3
	// Mesh is the batched tile surface of the chunk. It is nil for chunks
	// without any geometry (open water). The viewer must register a
	// placeholder entity at Origin for such chunks so that they can be
	// tracked and evicted like any other.
	Mesh *Mesh
	// Border is the chunk border overlay. It is nil unless borders are
	// enabled.
	Border *Mesh
	// Decorations holds the decoration placements of the chunk, positioned
	// in world space.
	Decorations []Decoration
}

// Viewer is the boundary to the rendering collaborator. A Viewer owns the
// actual engine entities: the Loader only holds the opaque handles it
// returns.
type Viewer interface {
	// ViewChunk registers the chunk described by view and returns an opaque
	// handle for it. An error means the resources could not be created right
	// now; the Loader treats this as retryable and will ask again on a later
	// tick.
	ViewChunk(view ChunkView) (uuid.UUID, error)
	// HideChunk releases the parent node registered under the handle passed
	// together with all of its children. No child may outlive the parent.
	HideChunk(pos ChunkPos, handle uuid.UUID)
}

// NopViewer implements the Viewer interface with no-op methods. Structs may
// embed it to avoid having to implement methods they have no use for.
type NopViewer struct{}

// ViewChunk ...
func (NopViewer) ViewChunk(ChunkView) (uuid.UUID, error) { return uuid.New(), nil }

// HideChunk ...
func (NopViewer) HideChunk(ChunkPos, uuid.UUID) {}
