package game

import (
	"log/slog"

	"github.com/pthm-cable/plume/components"
	"github.com/pthm-cable/plume/particles"
	"github.com/pthm-cable/plume/telemetry"
)

// flushTelemetry closes the stats window when it is due, then writes it out
// and reacts to any bookmarks it raises.
func (g *Game) flushTelemetry() {
	tick := g.clock.Ticks()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	window := g.collector.Flush(tick)
	if g.statsCallback != nil {
		g.statsCallback(window)
	}
	g.writeWindow(window, g.perfCollector.Stats())

	for _, bm := range g.bookmarkDetector.Check(window) {
		g.handleBookmark(bm)
	}
}

func (g *Game) writeWindow(window telemetry.WindowStats, perf telemetry.PerfStats) {
	if g.logStats {
		window.LogStats()
		perf.LogStats()
	}
	if err := g.outputManager.WriteTelemetry(window); err != nil {
		slog.Error("writing telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perf, window.WindowEndTick); err != nil {
		slog.Error("writing perf", "error", err)
	}
}

func (g *Game) handleBookmark(bm telemetry.Bookmark) {
	if g.logStats {
		bm.LogBookmark()
	}
	if err := g.outputManager.WriteBookmark(bm); err != nil {
		slog.Error("writing bookmark", "error", err)
	}
	if g.snapshotDir != "" {
		g.saveSnapshot(&bm)
	}
}

// saveSnapshot writes the current state of every emitter to snapshotDir.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	s := g.createSnapshot(bookmark)
	path, err := telemetry.SaveSnapshot(s, g.snapshotDir)
	if err != nil {
		slog.Error("saving snapshot", "tick", s.Tick, "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", s.Tick)
}

func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    g.rngSeed,
		Tick:       g.clock.Ticks(),
		SimTimeSec: g.clock.Now(),
		Wind:       [2]float32{g.currentWind.X(), g.currentWind.Y()},
		Bookmark:   bookmark,
	}
	for _, e := range g.entities {
		ident, placement, _, emitter := g.emitterMapper.Get(e)
		s.Emitters = append(s.Emitters, g.emitterState(ident, placement.Position, emitter))
	}
	return s
}

// emitterState captures one emitter's buffer and the particles its last
// draw step saw, evaluated at the current time.
func (g *Game) emitterState(ident *components.Identity, pos particles.WorldPosition, em *components.Emitter) telemetry.EmitterState {
	buf := em.Emitter.Buffer()
	st := telemetry.EmitterState{
		ID:           ident.ID.String(),
		Name:         ident.Name,
		Kind:         ident.Kind,
		TileX:        pos.TileX,
		TileZ:        pos.TileZ,
		Location:     [3]float32(pos.Location),
		Capacity:     buf.Capacity(),
		Rate:         buf.Rate(),
		LastEmission: buf.LastEmission(),
		DrawCounter:  buf.DrawCounter(),
		Cursors:      buf.Cursors(),
		Stats:        buf.Stats(),
		Lifetime:     g.lifetimeTracker.Get(em.Index),
	}

	now := g.clock.Now()
	for _, span := range em.Drawn.Spans() {
		vs := em.Mirror.Vertices(span)
		for j := 0; j < len(vs); j += particles.VerticesPerParticle {
			st.Particles = append(st.Particles, telemetry.NewParticleState(&vs[j], now))
		}
	}
	return st
}
