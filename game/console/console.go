// Package console implements a simple stdin-driven console for the game
// harness, exposing the debug toggles the original prototype bound to keys.
package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Oliver-Form/fortune/game"
	"github.com/go-gl/mathgl/mgl64"
)

// Console provides a CLI backed command source that reads commands from an
// io.Reader (defaulting to os.Stdin) and executes them against the Game.
type Console struct {
	game     *game.Game
	log      *slog.Logger
	reader   io.Reader
	teleport func(mgl64.Vec3)
}

// New returns a Console bound to the Game passed. The console reads from
// os.Stdin and writes command output to the supplied logger.
func New(g *game.Game, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{game: g, log: log, reader: os.Stdin}
}

// WithReader sets a custom reader for the console input. It enables testing
// the console without relying on os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// WithTeleport sets the function the tp command moves the viewer with. The
// command is disabled when no function is set.
func (c *Console) WithTeleport(f func(mgl64.Vec3)) *Console {
	c.teleport = f
	return c
}

// Run starts consuming commands from the console. It blocks until the
// context is cancelled, the underlying reader reaches EOF or the stop
// command is issued.
func (c *Console) Run(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !c.execute(fields[0], fields[1:]) {
			return
		}
	}
}

// execute runs a single command, reporting whether the console should keep
// reading.
func (c *Console) execute(name string, args []string) bool {
	switch name {
	case "help":
		c.log.Info("commands: tp <x> <z>, borders, stats, stop")
	case "tp":
		if c.teleport == nil {
			c.log.Error("tp: no viewer bound to the console")
			return true
		}
		if len(args) != 2 {
			c.log.Error("usage: tp <x> <z>")
			return true
		}
		x, errX := strconv.ParseFloat(args[0], 64)
		z, errZ := strconv.ParseFloat(args[1], 64)
		if errX != nil || errZ != nil {
			c.log.Error("tp: coordinates must be numbers")
			return true
		}
		c.teleport(mgl64.Vec3{x, 0, z})
		c.log.Info("teleported viewer", "x", x, "z", z)
	case "borders":
		c.log.Info("chunk borders toggled", "visible", c.game.ToggleChunkBorders())
	case "stats":
		c.log.Info("game stats",
			"resident", c.game.ResidentCount(),
			"explored", c.game.ExploredCount(),
			"tps", c.game.TPS(),
		)
	case "stop":
		if err := c.game.Close(); err != nil {
			c.log.Error("error closing game", "err", err)
		}
		return false
	default:
		c.log.Error("unknown command, try help", "command", name)
	}
	return true
}
