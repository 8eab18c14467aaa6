package world

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// LoaderConfig holds the options of a chunk Loader.
type LoaderConfig struct {
	// Grid is the backing tile grid that chunks are cut out of. It must not
	// be nil.
	Grid *TileGrid
	// Viewer receives the resources built for every chunk entering the
	// streaming window and releases them again on eviction. Defaults to
	// NopViewer.
	Viewer Viewer
	// Radius is the render radius in chunks: the half-width of the square
	// streaming window kept resident around the viewer. Defaults to 5.
	Radius int
	// ChunkBorders enables the debug border overlay on every chunk built.
	ChunkBorders bool
	// Log is the logger chunk build problems are reported to. Defaults to
	// slog.Default().
	Log *slog.Logger
}

func (conf LoaderConfig) withDefaults() LoaderConfig {
	if conf.Viewer == nil {
		conf.Viewer = NopViewer{}
	}
	if conf.Radius <= 0 {
		conf.Radius = 5
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	return conf
}

// New creates a Loader with the options in conf. The returned Loader is empty
// until its first Move.
func (conf LoaderConfig) New() *Loader {
	if conf.Grid == nil {
		panic("loader config must carry a tile grid")
	}
	conf = conf.withDefaults()
	return &Loader{
		conf:        conf,
		borders:     conf.ChunkBorders,
		resident:    make(map[ChunkPos]uuid.UUID),
		warnLimiter: rate.NewLimiter(rate.Every(time.Second*5), 1),
	}
}

// Loader streams chunks around a moving viewer position. It keeps a square
// window of 2*Radius+1 chunks a side, clipped to the bounds of the grid,
// resident at all times: chunks entering the window are decomposed, built and
// registered with the Viewer, chunks leaving it are released again. After
// every Move, the resident set is exactly the clipped window around the
// viewer's chunk - no chunk is ever resident twice and no chunk outside the
// grid is ever resident.
//
// All work runs synchronously inside Move, within the simulation tick that
// called it. The Loader is not safe for use from multiple goroutines.
type Loader struct {
	conf    LoaderConfig
	borders bool

	// pos is the chunk the viewer was last seen in. A Move that stays within
	// the same chunk produces an empty window delta and is skipped entirely,
	// unless a chunk build failed on the previous pass.
	pos        ChunkPos
	populated  bool
	incomplete bool

	resident    map[ChunkPos]uuid.UUID
	warnLimiter *rate.Limiter
}

// Move updates the viewer's world-space position and recomputes the
// streaming window around the chunk it falls in. Chunks newly inside the
// window are built and registered, chunks that dropped out are released.
// Failed chunk builds are left out of the resident set and retried on the
// next Move, even if the viewer did not change chunks in the meantime.
func (l *Loader) Move(pos mgl64.Vec3) {
	c := ChunkPosFromVec3(pos)
	if l.populated && !l.incomplete && c == l.pos {
		return
	}
	l.pos, l.populated = c, true
	l.refresh()
}

// Chunk returns the resource handle registered for the chunk at the position
// passed, if it is currently resident.
func (l *Loader) Chunk(pos ChunkPos) (uuid.UUID, bool) {
	handle, ok := l.resident[pos]
	return handle, ok
}

// Len returns the number of chunks currently resident.
func (l *Loader) Len() int {
	return len(l.resident)
}

// Positions returns the positions of all resident chunks, in no particular
// order.
func (l *Loader) Positions() []ChunkPos {
	positions := make([]ChunkPos, 0, len(l.resident))
	for pos := range l.resident {
		positions = append(positions, pos)
	}
	return positions
}

// ShowBorders enables or disables the chunk border overlay. Resident chunks
// are rebuilt immediately so that the change is visible without the viewer
// having to move.
func (l *Loader) ShowBorders(show bool) {
	if l.borders == show {
		return
	}
	l.borders = show
	if l.populated {
		l.evictAll()
		l.refresh()
	}
}

// Close releases every resident chunk. The Loader must not be moved again
// after it was closed.
func (l *Loader) Close() {
	l.evictAll()
	l.populated = false
}

// refresh recomputes the window around l.pos, evicting chunks that dropped
// out of it and building chunks that entered it.
func (l *Loader) refresh() {
	r := int32(l.conf.Radius)
	maxX := int32(l.conf.Grid.Width() / ChunkSize)
	maxZ := int32(l.conf.Grid.Height() / ChunkSize)

	n := 2*l.conf.Radius + 1
	desired := make(map[ChunkPos]struct{}, n*n)
	for x := l.pos[0] - r; x <= l.pos[0]+r; x++ {
		if x < 0 || x >= maxX {
			continue
		}
		for z := l.pos[1] - r; z <= l.pos[1]+r; z++ {
			if z < 0 || z >= maxZ {
				continue
			}
			desired[ChunkPos{x, z}] = struct{}{}
		}
	}

	// Evict before loading, so resources are returned to the viewer before
	// more are requested from it.
	for pos, handle := range l.resident {
		if _, ok := desired[pos]; !ok {
			l.conf.Viewer.HideChunk(pos, handle)
			delete(l.resident, pos)
		}
	}
	l.incomplete = false
	for pos := range desired {
		if _, ok := l.resident[pos]; ok {
			continue
		}
		if !l.spawn(pos) {
			l.incomplete = true
		}
	}
}

// spawn decomposes, builds and registers the chunk at the position passed,
// reporting whether it is now resident.
func (l *Loader) spawn(pos ChunkPos) bool {
	c := DecomposeChunk(l.conf.Grid, pos)
	view := ChunkView{
		Pos:         pos,
		Origin:      c.Origin(),
		Mesh:        BuildChunkMesh(c),
		Decorations: DecorateChunk(c),
	}
	if l.borders {
		view.Border = BuildChunkBorder()
	}
	handle, err := l.conf.Viewer.ViewChunk(view)
	if err != nil {
		// Resource creation failures are retryable: leave the chunk out of
		// the resident set so the next Move attempts it again.
		if l.warnLimiter.Allow() {
			l.conf.Log.Warn("loader: chunk resources could not be created, retrying next tick", "pos", pos, "err", err)
		}
		return false
	}
	l.resident[pos] = handle
	return true
}

func (l *Loader) evictAll() {
	for pos, handle := range l.resident {
		l.conf.Viewer.HideChunk(pos, handle)
		delete(l.resident, pos)
	}
}
