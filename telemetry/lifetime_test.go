package telemetry

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pthm-cable/plume/particles"
)

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	idx := lt.Register(uuid.New(), "stack", 0)

	sample := func(emitted, live int) EmitterSample {
		return EmitterSample{Stats: particles.Stats{Emitted: emitted, Live: live, Capacity: 11, Free: 10 - live}}
	}

	if ev := lt.Update(idx, 1, sample(0, 0), true); len(ev) != 0 {
		t.Errorf("first update should not emit events, got %v", ev)
	}
	ev := lt.Update(idx, 2, sample(3, 3), false)
	if len(ev) != 1 || ev[0].Type != EventResume {
		t.Errorf("events = %v, want one resume", ev)
	}
	lt.Update(idx, 3, sample(8, 6), false)
	ev = lt.Update(idx, 4, sample(8, 2), true)
	if len(ev) != 1 || ev[0].Type != EventIdle {
		t.Errorf("events = %v, want one idle", ev)
	}
	lt.RecordThrottle(idx)
	lt.RecordFlushError(idx)

	s := lt.Get(idx)
	if s.FirstEmissionTick != 2 {
		t.Errorf("first emission tick = %d, want 2", s.FirstEmissionTick)
	}
	if s.PeakLive != 6 {
		t.Errorf("peak live = %d, want 6", s.PeakLive)
	}
	if s.IdleTicks != 2 {
		t.Errorf("idle ticks = %d, want 2", s.IdleTicks)
	}
	if s.ThrottledTicks != 1 || s.FlushErrors != 1 {
		t.Errorf("throttled/flush errors = %d/%d, want 1/1", s.ThrottledTicks, s.FlushErrors)
	}
	if s.Emitted != 8 || !s.Idle() {
		t.Errorf("emitted = %d idle = %v", s.Emitted, s.Idle())
	}
}

func TestLifetimeTrackerUnknownIndex(t *testing.T) {
	lt := NewLifetimeTracker()
	if lt.Get(3) != nil {
		t.Error("expected nil for unknown index")
	}
	if ev := lt.Update(3, 1, EmitterSample{}, false); ev != nil {
		t.Error("expected no events for unknown index")
	}
	lt.RecordThrottle(-1)
}
