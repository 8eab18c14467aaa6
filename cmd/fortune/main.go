package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/Oliver-Form/fortune/game"
	"github.com/Oliver-Form/fortune/game/console"
	"github.com/Oliver-Form/fortune/game/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml"
)

// runSpeed is the speed the simulated viewer wanders at, in world units per
// second.
const runSpeed = 5.0

func main() {
	log := slog.Default()
	uc, err := readConfig(log)
	if err != nil {
		log.Error("error reading config", "err", err)
		os.Exit(1)
	}
	conf, err := uc.Config(log)
	if err != nil {
		log.Error("error resolving config", "err", err)
		os.Exit(1)
	}

	pos := &viewerPos{}
	conf.ViewerPos = pos.Load

	g, err := game.New(conf)
	if err != nil {
		log.Error("error creating game", "err", err)
		os.Exit(1)
	}
	g.CloseOnProgramEnd()
	g.Start()

	go wander(g, pos, conf.Grid)
	go console.New(g, log).WithTeleport(pos.Store).Run(context.Background())

	g.Wait()
}

// viewerPos holds the simulated viewer position, shared between the wanderer
// goroutine, the console tp command and the tick loop.
type viewerPos struct {
	mu sync.Mutex
	v  mgl64.Vec3
}

func (p *viewerPos) Load() mgl64.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v
}

func (p *viewerPos) Store(v mgl64.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v = v
}

// wander walks the viewer between random waypoints on the map, exercising
// the streaming window the way a player roaming the world would.
func wander(g *game.Game, pos *viewerPos, grid *world.TileGrid) {
	w := float64(grid.Width()) * world.TileSize
	h := float64(grid.Height()) * world.TileSize
	target := mgl64.Vec3{w / 2, 0, h / 2}
	pos.Store(target)

	const step = time.Second / 20
	tc := time.NewTicker(step)
	defer tc.Stop()
	closed := done(g)
	for {
		select {
		case <-tc.C:
		case <-closed:
			return
		}
		cur := pos.Load()
		delta := target.Sub(cur)
		if delta.Len() < runSpeed*step.Seconds() {
			target = mgl64.Vec3{rand.Float64() * w, 0, rand.Float64() * h}
			continue
		}
		pos.Store(cur.Add(delta.Normalize().Mul(runSpeed * step.Seconds())))
	}
}

func done(g *game.Game) <-chan struct{} {
	c := make(chan struct{})
	go func() {
		g.Wait()
		close(c)
	}()
	return c
}

// readConfig reads the configuration from config.toml, creating a file with
// the default configuration if it does not yet exist.
func readConfig(log *slog.Logger) (game.UserConfig, error) {
	c := game.DefaultConfig()
	if _, err := os.Stat("config.toml"); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile("config.toml", data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		log.Info("created default config.toml")
		return c, nil
	}
	data, err := os.ReadFile("config.toml")
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}
