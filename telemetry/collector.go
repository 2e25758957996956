package telemetry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/particles"
)

// EmitterSample is one emitter's state after a tick.
type EmitterSample struct {
	Stats  particles.Stats // cumulative counters and occupancy
	Volume float64         // exhaust flow this tick (m³/s)
}

// Collector accumulates samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Cumulative counters at the previous sample, per emitter
	last []particles.Stats

	// Counters for current window
	emitted     int
	retired     int
	freed       int
	throttled   int
	flushes     int
	flushErrors int
	events      map[EventType]int

	// Per-tick samples for current window
	liveSamples   []float64
	utilSamples   []float64
	windSamples   []float64
	volumeSamples []float64
	liveEnd       int
	emitters      int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		events:              make(map[EventType]int),
	}
}

// RecordTick records every emitter's state after a tick, plus the wind.
// Samples must be given in the same emitter order on every call.
func (c *Collector) RecordTick(samples []EmitterSample, wind mgl32.Vec2) {
	if len(c.last) != len(samples) {
		// Emitter set changed; restart deltas from the current totals.
		c.last = make([]particles.Stats, len(samples))
		for i, s := range samples {
			c.last[i] = s.Stats
		}
	}

	var live int
	var volume float64
	for i, s := range samples {
		prev := c.last[i]
		c.emitted += s.Stats.Emitted - prev.Emitted
		c.retired += s.Stats.Retired - prev.Retired
		c.freed += s.Stats.Freed - prev.Freed
		c.throttled += s.Stats.Throttled - prev.Throttled
		c.flushes += s.Stats.Flushes - prev.Flushes
		c.last[i] = s.Stats

		live += s.Stats.Live
		volume += s.Volume
		c.utilSamples = append(c.utilSamples, s.Stats.Utilization())
	}

	c.liveSamples = append(c.liveSamples, float64(live))
	c.windSamples = append(c.windSamples, float64(wind.Len()))
	c.volumeSamples = append(c.volumeSamples, volume)
	c.liveEnd = live
	c.emitters = len(samples)
}

// RecordEvent counts a telemetry event in the current window.
func (c *Collector) RecordEvent(e Event) {
	c.events[e.Type]++
	if e.Type == EventFlushError {
		c.flushErrors++
	}
}

// EventCount returns how many events of a type were recorded this window.
func (c *Collector) EventCount(t EventType) int {
	return c.events[t]
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32) WindowStats {
	live := Summarize(c.liveSamples)
	util := Summarize(c.utilSamples)
	wind := Summarize(c.windSamples)
	volume := Summarize(c.volumeSamples)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Emitters: c.emitters,

		Emitted:     c.emitted,
		Retired:     c.retired,
		Freed:       c.freed,
		Throttled:   c.throttled,
		Flushes:     c.flushes,
		FlushErrors: c.flushErrors,

		LiveEnd:  c.liveEnd,
		LiveMean: live.Mean,
		LiveStd:  live.Std,
		LiveP10:  live.P10,
		LiveP50:  live.P50,
		LiveP90:  live.P90,

		UtilMean: util.Mean,
		UtilP90:  util.P90,
		UtilMax:  util.Max,

		WindMean:   wind.Mean,
		WindMax:    wind.Max,
		VolumeMean: volume.Mean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.emitted = 0
	c.retired = 0
	c.freed = 0
	c.throttled = 0
	c.flushes = 0
	c.flushErrors = 0
	c.events = make(map[EventType]int)
	c.liveSamples = c.liveSamples[:0]
	c.utilSamples = c.utilSamples[:0]
	c.windSamples = c.windSamples[:0]
	c.volumeSamples = c.volumeSamples[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
