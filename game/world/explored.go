package world

import (
	"github.com/brentp/intintmap"
)

// ExploredTracker records every chunk the viewer has ever visited. The set
// only grows: entries are added and never removed. It exists purely to feed
// minimap rendering and carries no invariants beyond set semantics.
type ExploredTracker struct {
	m *intintmap.Map
}

// NewExploredTracker creates an empty ExploredTracker.
func NewExploredTracker() *ExploredTracker {
	return &ExploredTracker{m: intintmap.New(1024, 0.6)}
}

// Visit marks the chunk at the position passed as explored. Visiting a chunk
// that was already explored is a no-op.
func (t *ExploredTracker) Visit(pos ChunkPos) {
	t.m.Put(packChunkPos(pos), 1)
}

// Explored reports whether the chunk at the position passed was ever
// visited.
func (t *ExploredTracker) Explored(pos ChunkPos) bool {
	_, ok := t.m.Get(packChunkPos(pos))
	return ok
}

// Len returns the number of explored chunks.
func (t *ExploredTracker) Len() int {
	return t.m.Size()
}

// Positions returns the positions of all explored chunks, in no particular
// order. It is used to draw the minimap and to flush the set to a persistent
// store.
func (t *ExploredTracker) Positions() []ChunkPos {
	positions := make([]ChunkPos, 0, t.m.Size())
	for kv := range t.m.Items() {
		positions = append(positions, unpackChunkPos(kv[0]))
	}
	return positions
}

// packChunkPos packs a chunk position into a single int64 map key, X in the
// upper half.
func packChunkPos(pos ChunkPos) int64 {
	return int64(uint64(uint32(pos[0]))<<32 | uint64(uint32(pos[1])))
}

func unpackChunkPos(k int64) ChunkPos {
	return ChunkPos{int32(uint64(k) >> 32), int32(uint64(k))}
}
