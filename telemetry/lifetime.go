package telemetry

import "github.com/google/uuid"

// LifetimeStats tracks per-emitter statistics since the emitter was registered.
type LifetimeStats struct {
	ID           uuid.UUID `csv:"id"`
	Name         string    `csv:"name"`
	RegisterTick int32     `csv:"register_tick"`

	FirstEmissionTick int32   `csv:"first_emission_tick"` // -1 until the first particle
	PeakLive          int     `csv:"peak_live"`
	PeakUtilization   float64 `csv:"peak_utilization"`
	ThrottledTicks    int     `csv:"throttled_ticks"`
	IdleTicks         int     `csv:"idle_ticks"`
	FlushErrors       int     `csv:"flush_errors"`

	// Cumulative buffer counters at the last update
	Emitted int `csv:"emitted"`
	Freed   int `csv:"freed"`

	idle    bool
	updated bool
}

// Idle reports whether the emitter was idle at its last update.
func (s *LifetimeStats) Idle() bool {
	return s.idle
}

// LifetimeTracker manages per-emitter lifetime statistics.
type LifetimeTracker struct {
	stats []*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{}
}

// Register starts tracking an emitter and returns its index.
func (lt *LifetimeTracker) Register(id uuid.UUID, name string, tick int32) int {
	lt.stats = append(lt.stats, &LifetimeStats{
		ID:                id,
		Name:              name,
		RegisterTick:      tick,
		FirstEmissionTick: -1,
	})
	return len(lt.stats) - 1
}

// Get returns the lifetime stats for an emitter index, or nil if not found.
func (lt *LifetimeTracker) Get(index int) *LifetimeStats {
	if index < 0 || index >= len(lt.stats) {
		return nil
	}
	return lt.stats[index]
}

// Update folds an emitter's tick sample into its lifetime stats and returns
// the idle/resume events implied by the transition. The first update only
// establishes the state.
func (lt *LifetimeTracker) Update(index int, tick int32, sample EmitterSample, idle bool) []Event {
	s := lt.Get(index)
	if s == nil {
		return nil
	}

	st := sample.Stats
	if st.Emitted > 0 && s.FirstEmissionTick < 0 {
		s.FirstEmissionTick = tick
	}
	if st.Live > s.PeakLive {
		s.PeakLive = st.Live
	}
	if u := st.Utilization(); u > s.PeakUtilization {
		s.PeakUtilization = u
	}
	if idle {
		s.IdleTicks++
	}

	var events []Event
	if s.updated && idle != s.idle {
		if idle {
			events = append(events, NewIdleEvent(tick, index))
		} else {
			events = append(events, NewResumeEvent(tick, index))
		}
	}
	s.idle = idle
	s.updated = true

	s.Emitted = st.Emitted
	s.Freed = st.Freed
	return events
}

// RecordThrottle counts a throttled update.
func (lt *LifetimeTracker) RecordThrottle(index int) {
	if s := lt.Get(index); s != nil {
		s.ThrottledTicks++
	}
}

// RecordFlushError counts a failed upload.
func (lt *LifetimeTracker) RecordFlushError(index int) {
	if s := lt.Get(index); s != nil {
		s.FlushErrors++
	}
}

// All returns all tracked stats in registration order.
func (lt *LifetimeTracker) All() []*LifetimeStats {
	return lt.stats
}

// Count returns the number of tracked emitters.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
