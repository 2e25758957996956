package game

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pthm-cable/plume/particles"
)

// dumpOut receives the human-readable emitter dumps; nil means stdout.
var dumpOut io.Writer

// SetLogWriter redirects Logf output.
func SetLogWriter(w io.Writer) {
	dumpOut = w
}

// Logf writes one formatted line of dump output.
func Logf(format string, args ...any) {
	w := dumpOut
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// maybeDumpEmitters logs the emitter state every DumpInterval seconds of sim time.
func (g *Game) maybeDumpEmitters(now float64) {
	interval := g.cfg.Telemetry.DumpInterval
	if interval <= 0 || now < g.nextDump {
		return
	}
	for g.nextDump <= now {
		g.nextDump += interval
	}
	g.logEmitterState()
	g.logPerfStats()
}

// logEmitterState logs cursors and counters of every emitter.
func (g *Game) logEmitterState() {
	Logf("=== Tick %d (%.1fs) | wind (%.2f, %.2f) | volume x%.2f ===",
		g.clock.Ticks(), g.clock.Now(), g.currentWind.X(), g.currentWind.Y(), g.volumeScale)

	var live, capacity int
	for _, e := range g.entities {
		ident, placement, exhaust, emitter := g.emitterMapper.Get(e)
		st := emitter.Emitter.Stats()
		c := emitter.Emitter.Buffer().Cursors()
		pos := placement.Position

		Logf("%-14s %-6s tile (%d,%d) rate %6.1f/s volume %5.2f m3/s",
			ident.Name, ident.Kind, pos.TileX, pos.TileZ,
			emitter.Emitter.Buffer().Rate(), exhaust.CurrentVolume)
		Logf("  cursors r=%d a=%d n=%d f=%d | live %d pending %d expiring %d free %d/%d",
			c.Retired, c.Active, c.New, c.Free,
			st.Live, st.Pending, st.Expiring, st.Free, st.Capacity)
		Logf("  emitted %d retired %d freed %d throttled %d flushes %d flush errors %d",
			st.Emitted, st.Retired, st.Freed, st.Throttled, st.Flushes, emitter.FlushErrors)

		live += st.Live
		capacity += st.Capacity
	}

	Logf("Total: %d emitters, %d live particles, %d slots (%d vertices)",
		len(g.entities), live, capacity, capacity*particles.VerticesPerParticle)
	Logf("")
}

// logPerfStats logs per-emitter update cost.
func (g *Game) logPerfStats() {
	total := g.perf.Total()
	Logf("=== Emitter update cost @ Tick %d (steps %dx) ===", g.clock.Ticks(), g.stepsPerUpdate)
	Logf("Total: %s", total.Round(time.Microsecond))

	for _, name := range g.perf.SortedNames() {
		avg := g.perf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		Logf("  %-18s %10s  %5.1f%%", name, avg.Round(time.Microsecond), pct)
	}
	Logf("")
}
