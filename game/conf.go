package game

import (
	"fmt"
	"log/slog"

	"github.com/Oliver-Form/fortune/game/world"
	"github.com/Oliver-Form/fortune/game/world/exploredb"
	"github.com/go-gl/mathgl/mgl64"
)

// Config contains the resolved runtime options for starting a Game. Config
// is usually produced from a UserConfig, but may be filled out manually, for
// example in tests.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set
	// to slog.Default().
	Log *slog.Logger
	// Grid is the backing tile grid of the world. It must not be nil.
	Grid *world.TileGrid
	// Viewer is the rendering collaborator chunk resources are registered
	// with. Defaults to world.NopViewer.
	Viewer world.Viewer
	// ViewerPos returns the current world-space position of the viewer. It
	// is called once per tick by the tick loop. Defaults to a viewer parked
	// at the world origin.
	ViewerPos func() mgl64.Vec3
	// RenderRadius is the half-width in chunks of the streaming window kept
	// resident around the viewer. Defaults to 5.
	RenderRadius int
	// ChunkBorders enables the debug chunk border overlay at startup. It may
	// be toggled at runtime through Game.ToggleChunkBorders.
	ChunkBorders bool
	// Provider, if non-nil, persists the explored-region set: it pre-seeds
	// the tracker when the Game is created and receives a flush when the
	// Game closes.
	Provider *exploredb.Provider
	// TickRate is the number of simulation ticks per second the tick loop
	// runs at. Defaults to 20.
	TickRate int
}

func (conf Config) withDefaults() Config {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Viewer == nil {
		conf.Viewer = world.NopViewer{}
	}
	if conf.ViewerPos == nil {
		conf.ViewerPos = func() mgl64.Vec3 { return mgl64.Vec3{} }
	}
	if conf.RenderRadius <= 0 {
		conf.RenderRadius = 5
	}
	if conf.TickRate <= 0 {
		conf.TickRate = 20
	}
	return conf
}

// UserConfig is the serialisable configuration of the game as read from and
// written to the config file. Call Config to resolve it into a runtime
// Config.
type UserConfig struct {
	World struct {
		// MapPath is the path of the binary map file the world grid is
		// loaded from. A missing or unreadable file is not fatal: the grid
		// falls back to a uniform grass world of the configured dimensions.
		MapPath string
		// Width and Height are the dimensions of the world in tiles.
		Width, Height int
		// Synthesize skips the map file entirely and generates the world
		// grid procedurally from Seed.
		Synthesize bool
		// Seed seeds the procedural world generator. Only used when
		// Synthesize is set.
		Seed int64
	}
	Chunks struct {
		// RenderRadius is the render radius in chunks.
		RenderRadius int
		// ChunkBorders enables the debug chunk border overlay at startup.
		ChunkBorders bool
	}
	Explored struct {
		// Persist enables storing the explored-region set on disk between
		// runs.
		Persist bool
		// Folder is the directory the explored-region store lives in.
		Folder string
	}
	Ticker struct {
		// TickRate is the number of simulation ticks per second.
		TickRate int
	}
}

// DefaultConfig returns a UserConfig with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.World.MapPath = "world.map"
	c.World.Width = 4096
	c.World.Height = 4096
	c.World.Seed = 1
	c.Chunks.RenderRadius = 5
	c.Explored.Folder = "explored"
	c.Ticker.TickRate = 20
	return c
}

// Config resolves the user configuration into a runtime Config: the tile
// grid is loaded or synthesized and the explored-region store is opened if
// persistence is enabled. A configuration with non-positive world dimensions
// is rejected.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}
	if uc.World.Width <= 0 || uc.World.Height <= 0 {
		return Config{}, fmt.Errorf("world dimensions must be positive, got %vx%v", uc.World.Width, uc.World.Height)
	}
	conf := Config{
		Log:          log,
		RenderRadius: uc.Chunks.RenderRadius,
		ChunkBorders: uc.Chunks.ChunkBorders,
		TickRate:     uc.Ticker.TickRate,
	}
	if uc.World.Synthesize {
		conf.Grid = world.GenerateTileGrid(uc.World.Seed, uc.World.Width, uc.World.Height)
	} else {
		conf.Grid = world.LoadTileGrid(uc.World.MapPath, uc.World.Width, uc.World.Height, log)
	}
	if uc.Explored.Persist {
		p, err := exploredb.Open(uc.Explored.Folder)
		if err != nil {
			return conf, fmt.Errorf("open explored folder: %w", err)
		}
		conf.Provider = p
	}
	return conf, nil
}
