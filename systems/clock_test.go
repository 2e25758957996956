package systems

import "testing"

func TestClockTick(t *testing.T) {
	c := NewClock(0.25)

	for i := 0; i < 4; i++ {
		c.Tick()
	}
	if c.Now() != 1.0 {
		t.Errorf("now = %v, want 1.0", c.Now())
	}
	if c.Ticks() != 4 {
		t.Errorf("ticks = %d, want 4", c.Ticks())
	}
}

func TestClockPaused(t *testing.T) {
	c := NewClock(0.5)
	c.Tick()
	c.SetPaused(true)

	now, elapsed := c.Tick()
	if now != 0.5 || elapsed != 0 {
		t.Errorf("paused tick = (%v, %v), want (0.5, 0)", now, elapsed)
	}
	if c.Ticks() != 2 {
		t.Errorf("paused ticks still count, got %d", c.Ticks())
	}

	c.SetPaused(false)
	if now, _ := c.Tick(); now != 1.0 {
		t.Errorf("resumed now = %v, want 1.0", now)
	}
}

func TestClockSetAndAdvance(t *testing.T) {
	c := NewClock(1)
	c.Set(10)
	c.Advance(2.5)
	if c.Now() != 12.5 {
		t.Errorf("now = %v, want 12.5", c.Now())
	}
	if c.Ticks() != 0 {
		t.Errorf("manual moves should not count ticks, got %d", c.Ticks())
	}
}
