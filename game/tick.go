package game

import (
	"math"
	"time"
)

const (
	// tpsSampleSize is the number of ticks the TPS average is taken over.
	tpsSampleSize = 20
	// lowTPSFraction is the fraction of the configured tick rate below which
	// a slow-tick warning is emitted. A large window move, such as a
	// teleport across the map, rebuilds the entire window within one tick
	// and will trip this.
	lowTPSFraction = 0.95
)

// tickLoop ticks the Game at the configured rate until it is closed,
// measuring the achieved tick rate and warning once when it drops below the
// configured rate.
func (g *Game) tickLoop() {
	interval := time.Second / time.Duration(g.conf.TickRate)
	tc := time.NewTicker(interval)
	defer tc.Stop()

	threshold := float64(g.conf.TickRate) * lowTPSFraction
	lastTick := time.Now()
	var (
		durationSum time.Duration
		ticksCount  int
		warned      bool
	)
	for {
		select {
		case <-tc.C:
			tickStart := time.Now()
			duration := tickStart.Sub(lastTick)
			lastTick = tickStart
			if duration > 0 {
				durationSum += duration
				ticksCount++
				if ticksCount >= tpsSampleSize {
					if avg := durationSum / time.Duration(ticksCount); avg > 0 {
						tps := 1.0 / avg.Seconds()
						g.tps.Store(math.Float64bits(tps))
						if tps < threshold {
							if !warned {
								g.log.Warn("game: tick rate dropped below threshold", "tps", tps)
								warned = true
							}
						} else if warned {
							warned = false
						}
					}
					durationSum, ticksCount = 0, 0
				}
			}
			g.Tick(g.conf.ViewerPos())
		case <-g.closing:
			g.running.Done()
			return
		}
	}
}

// TPS returns the current average ticks per second of the Game. The value is
// averaged over the last tpsSampleSize ticks and may be zero if no samples
// have been recorded yet.
func (g *Game) TPS() float64 {
	return math.Float64frombits(g.tps.Load())
}
