package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/plume/particles"
	"github.com/pthm-cable/plume/systems"
	"github.com/pthm-cable/plume/telemetry"
)

// step runs a single tick: wind, motion, exhaust, emission, upload, draw
// cycle and telemetry, in that order, on the calling goroutine.
func (g *Game) step() {
	g.perfCollector.StartTick()

	now, elapsed := g.clock.Tick()
	tick := g.clock.Ticks()

	g.perfCollector.StartPhase(telemetry.PhaseWind)
	g.currentWind = g.wind.At(now)
	env := particles.Environment{Time: now, Elapsed: elapsed, Wind: g.currentWind}

	g.perfCollector.StartPhase(telemetry.PhaseMotion)
	g.updateMotion(elapsed)

	g.perfCollector.StartPhase(telemetry.PhaseExhaust)
	g.updateExhaust(now)

	g.perfCollector.StartPhase(telemetry.PhaseEmit)
	g.updateEmitters(env, tick)

	g.perfCollector.StartPhase(telemetry.PhaseFlush)
	g.flushEmitters(tick)

	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	g.drawCycle()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTelemetry(tick)
	g.flushTelemetry()
	g.maybeDumpEmitters(now)

	g.perfCollector.EndTick()
}

// updateMotion moves track-bound emitters.
func (g *Game) updateMotion(dt float64) {
	query := g.followerFilter.Query()
	for query.Next() {
		follower, placement := query.Get()
		systems.UpdateMotion(g.track, follower, placement, dt)
	}
}

// updateExhaust applies the pulse schedule and volume scale to every emitter.
func (g *Game) updateExhaust(now float64) {
	query := g.emitterFilter.Query()
	for query.Next() {
		_, _, exhaust, emitter := query.Get()
		systems.UpdateExhaust(exhaust, emitter.Emitter, now, g.volumeScale)
	}
}

// updateEmitters advances every emitter's buffer and reports throttled updates.
func (g *Game) updateEmitters(env particles.Environment, tick int32) {
	query := g.emitterFilter.Query()
	for query.Next() {
		ident, placement, _, emitter := query.Get()

		throttled := emitter.Emitter.Stats().Throttled
		start := time.Now()
		emitter.Emitter.Update(env, placement.Position)
		g.perf.Record(ident.Name, time.Since(start))

		if emitter.Emitter.Stats().Throttled > throttled {
			owed := backlog(emitter.Emitter.Buffer(), env.Time)
			g.collector.RecordEvent(telemetry.NewThrottleEvent(tick, emitter.Index, owed))
			g.lifetimeTracker.RecordThrottle(emitter.Index)
		}
	}
}

// backlog returns the particles a throttled buffer still owes at now.
func backlog(b *particles.Buffer, now float64) int {
	return int((now - b.LastEmission()) * b.Rate())
}

// flushEmitters uploads pending particles to each entity's mirror.
func (g *Game) flushEmitters(tick int32) {
	query := g.emitterFilter.Query()
	for query.Next() {
		ident, _, _, emitter := query.Get()
		if err := emitter.Emitter.Flush(emitter.Mirror); err != nil {
			emitter.FlushErrors++
			g.collector.RecordEvent(telemetry.NewFlushErrorEvent(tick, emitter.Index, err))
			g.lifetimeTracker.RecordFlushError(emitter.Index)
			slog.Warn("flush failed", "emitter", ident.Name, "tick", tick, "error", err)
		}
	}
}

// drawCycle takes each emitter's renderable range. The graphical Draw
// renders these ranges; headless runs only count them.
func (g *Game) drawCycle() {
	drawn := 0
	query := g.emitterFilter.Query()
	for query.Next() {
		_, _, _, emitter := query.Get()
		emitter.Drawn = emitter.Emitter.Renderable()
		drawn += emitter.Drawn.Count()
	}
	g.drawnParticles = drawn
}

// recordTelemetry samples every emitter into the collector and lifetime tracker.
func (g *Game) recordTelemetry(tick int32) {
	query := g.emitterFilter.Query()
	for query.Next() {
		_, _, exhaust, emitter := query.Get()

		sample := telemetry.EmitterSample{
			Stats:  emitter.Emitter.Stats(),
			Volume: exhaust.CurrentVolume,
		}
		g.samples[emitter.Index] = sample

		idle := emitter.Emitter.Buffer().Rate() < g.cfg.Particles.IdleThreshold
		for _, ev := range g.lifetimeTracker.Update(emitter.Index, tick, sample, idle) {
			g.collector.RecordEvent(ev)
		}
	}

	g.collector.RecordTick(g.samples, g.currentWind)
}
