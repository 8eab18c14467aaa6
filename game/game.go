package game

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/Oliver-Form/fortune/game/world"
	"github.com/Oliver-Form/fortune/game/world/exploredb"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Game ties the pieces of the prototype together: the backing tile grid, the
// chunk Loader streaming a window of the world around the viewer and the
// explored-region tracker feeding the minimap. All streaming work runs
// synchronously inside Tick; the Game holds no background chunk workers.
type Game struct {
	conf Config
	log  *slog.Logger

	session  uuid.UUID
	grid     *world.TileGrid
	loader   *world.Loader
	explored *world.ExploredTracker
	borders  bool

	tps atomic.Uint64

	// mu guards the loader and the explored tracker: the tick loop owns them
	// logically, but the interactive console may query and toggle state from
	// another goroutine.
	mu sync.Mutex

	closing chan struct{}
	closed  chan struct{}
	running sync.WaitGroup
	once    sync.Once
}

// New creates a Game from conf. When a persistence provider is configured,
// the explored-region set recorded for the same grid is restored into the
// tracker; a set recorded for different grid dimensions is discarded with a
// warning.
func New(conf Config) (*Game, error) {
	if conf.Grid == nil {
		return nil, fmt.Errorf("game: config must carry a tile grid")
	}
	conf = conf.withDefaults()

	g := &Game{
		conf:     conf,
		log:      conf.Log,
		session:  uuid.New(),
		grid:     conf.Grid,
		explored: world.NewExploredTracker(),
		borders:  conf.ChunkBorders,
		closing:  make(chan struct{}),
		closed:   make(chan struct{}),
	}
	g.loader = world.LoaderConfig{
		Grid:         conf.Grid,
		Viewer:       conf.Viewer,
		Radius:       conf.RenderRadius,
		ChunkBorders: conf.ChunkBorders,
		Log:          conf.Log,
	}.New()

	if p := conf.Provider; p != nil {
		if err := g.restoreExplored(p); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Session returns the unique id of this game session.
func (g *Game) Session() uuid.UUID {
	return g.session
}

// Tick advances the streaming state for the viewer position passed: the
// chunk the viewer stands in is marked explored and the streaming window is
// recomputed around it. All chunk building and eviction happens before Tick
// returns.
func (g *Game) Tick(pos mgl64.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.explored.Visit(world.ChunkPosFromVec3(pos))
	g.loader.Move(pos)
}

// Start starts the tick loop of the Game in a new goroutine. The loop ticks
// at the configured tick rate, feeding Tick with the position returned by
// the configured ViewerPos, until the Game is closed.
func (g *Game) Start() {
	g.log.Info("game: starting tick loop", "session", g.session, "tps", g.conf.TickRate, "radius", g.conf.RenderRadius)
	g.running.Add(1)
	go g.tickLoop()
}

// Wait blocks until the Game has been closed.
func (g *Game) Wait() {
	<-g.closed
}

// CloseOnProgramEnd closes the Game when a termination signal is received,
// flushing the explored-region set before the process exits.
func (g *Game) CloseOnProgramEnd() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		if err := g.Close(); err != nil {
			g.log.Error("game: error closing on program end", "err", err)
		}
	}()
}

// Close stops the tick loop, releases every resident chunk and flushes the
// explored-region set to the provider if one is configured. Close may be
// called more than once; calls after the first are no-ops.
func (g *Game) Close() error {
	var err error
	g.once.Do(func() {
		close(g.closing)
		g.running.Wait()

		g.mu.Lock()
		g.loader.Close()
		g.mu.Unlock()
		if p := g.conf.Provider; p != nil {
			err = g.flushExplored(p)
		}
		close(g.closed)
	})
	return err
}

// ToggleChunkBorders flips the chunk border overlay and returns the new
// state. Resident chunks are rebuilt so the change applies immediately.
func (g *Game) ToggleChunkBorders() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.borders = !g.borders
	g.loader.ShowBorders(g.borders)
	return g.borders
}

// ResidentCount returns the number of chunks currently resident.
func (g *Game) ResidentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loader.Len()
}

// ExploredCount returns the number of chunks ever visited this session,
// including chunks restored from the explored-region store.
func (g *Game) ExploredCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.explored.Len()
}

// Explored returns the explored-region tracker of the Game, used for minimap
// rendering.
func (g *Game) Explored() *world.ExploredTracker {
	return g.explored
}

func (g *Game) restoreExplored(p *exploredb.Provider) error {
	s, err := p.Settings()
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if s.Width == 0 && s.Height == 0 {
		// Fresh store, nothing to restore.
		return nil
	}
	if s.Width != g.grid.Width() || s.Height != g.grid.Height() {
		g.log.Warn("game: stored explored set belongs to a different map, discarding",
			"stored", fmt.Sprintf("%vx%v", s.Width, s.Height),
			"grid", fmt.Sprintf("%vx%v", g.grid.Width(), g.grid.Height()))
		return nil
	}
	positions, err := p.Load()
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	for _, pos := range positions {
		g.explored.Visit(pos)
	}
	if len(positions) > 0 {
		g.log.Info("game: restored explored set", "chunks", len(positions), "session", s.Session)
	}
	return nil
}

func (g *Game) flushExplored(p *exploredb.Provider) error {
	s := exploredb.Settings{Width: g.grid.Width(), Height: g.grid.Height(), Session: g.session}
	if err := p.SaveSettings(s); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if err := p.Store(g.explored.Positions()); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return p.Close()
}
