package game

import (
	"testing"
	"time"

	"github.com/Oliver-Form/fortune/game/world"
	"github.com/Oliver-Form/fortune/game/world/exploredb"
	"github.com/go-gl/mathgl/mgl64"
)

func testGrid() *world.TileGrid {
	return world.NewTileGrid(20*world.ChunkSize, 20*world.ChunkSize, world.Grass)
}

func TestNewRequiresGrid(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("no error creating a game without a grid")
	}
}

func TestGameTick(t *testing.T) {
	g, err := New(Config{Grid: testGrid(), RenderRadius: 1})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	const span = world.ChunkSize * world.TileSize
	g.Tick(mgl64.Vec3{5.5 * span, 0, 5.5 * span})

	if n := g.ResidentCount(); n != 9 {
		t.Errorf("%v chunks resident after tick, expected 9", n)
	}
	if n := g.ExploredCount(); n != 1 {
		t.Errorf("%v chunks explored after tick, expected 1", n)
	}
	if !g.Explored().Explored(world.ChunkPos{5, 5}) {
		t.Error("chunk (5, 5) not marked explored")
	}

	g.Tick(mgl64.Vec3{6.5 * span, 0, 5.5 * span})
	if n := g.ExploredCount(); n != 2 {
		t.Errorf("%v chunks explored after second tick, expected 2", n)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}
}

func TestGameCloseTwice(t *testing.T) {
	g, err := New(Config{Grid: testGrid()})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game a second time: %v", err)
	}
}

func TestGameStartAndClose(t *testing.T) {
	g, err := New(Config{Grid: testGrid(), RenderRadius: 1, TickRate: 100})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	g.Start()
	time.Sleep(time.Millisecond * 50)
	if n := g.ResidentCount(); n == 0 {
		t.Error("no chunks resident while the tick loop is running")
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}
	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after close")
	}
}

func TestGameFlushAndRestoreExplored(t *testing.T) {
	dir := t.TempDir()
	grid := testGrid()
	const span = world.ChunkSize * world.TileSize

	p, err := exploredb.Open(dir)
	if err != nil {
		t.Fatalf("error opening provider: %v", err)
	}
	g, err := New(Config{Grid: grid, RenderRadius: 1, Provider: p})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	g.Tick(mgl64.Vec3{2.5 * span, 0, 3.5 * span})
	g.Tick(mgl64.Vec3{3.5 * span, 0, 3.5 * span})
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}

	// A new session on the same grid restores the flushed set.
	p, err = exploredb.Open(dir)
	if err != nil {
		t.Fatalf("error reopening provider: %v", err)
	}
	g, err = New(Config{Grid: grid, RenderRadius: 1, Provider: p})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	if n := g.ExploredCount(); n != 2 {
		t.Fatalf("%v chunks restored, expected 2", n)
	}
	for _, pos := range []world.ChunkPos{{2, 3}, {3, 3}} {
		if !g.Explored().Explored(pos) {
			t.Errorf("chunk %v not restored", pos)
		}
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}
}

func TestGameDiscardsExploredOfOtherMap(t *testing.T) {
	dir := t.TempDir()
	const span = world.ChunkSize * world.TileSize

	p, err := exploredb.Open(dir)
	if err != nil {
		t.Fatalf("error opening provider: %v", err)
	}
	g, err := New(Config{Grid: testGrid(), RenderRadius: 1, Provider: p})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	g.Tick(mgl64.Vec3{2.5 * span, 0, 3.5 * span})
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}

	// The stored set belongs to a 20x20 chunk grid and must be discarded on a
	// differently sized one.
	p, err = exploredb.Open(dir)
	if err != nil {
		t.Fatalf("error reopening provider: %v", err)
	}
	other := world.NewTileGrid(10*world.ChunkSize, 10*world.ChunkSize, world.Grass)
	g, err = New(Config{Grid: other, RenderRadius: 1, Provider: p})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	if n := g.ExploredCount(); n != 0 {
		t.Fatalf("%v chunks restored from another map's set", n)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}
}

func TestGameTPSBeforeStart(t *testing.T) {
	g, err := New(Config{Grid: testGrid()})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	if tps := g.TPS(); tps != 0 {
		t.Errorf("TPS is %v before the tick loop started, expected 0", tps)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}
}

func TestGameToggleChunkBorders(t *testing.T) {
	g, err := New(Config{Grid: testGrid(), RenderRadius: 1})
	if err != nil {
		t.Fatalf("error creating game: %v", err)
	}
	if g.ToggleChunkBorders() != true {
		t.Error("first toggle did not enable borders")
	}
	if g.ToggleChunkBorders() != false {
		t.Error("second toggle did not disable borders")
	}
	if err := g.Close(); err != nil {
		t.Fatalf("error closing game: %v", err)
	}
}
