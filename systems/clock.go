package systems

// Clock is the fixed-step simulation clock. Time is in simulation seconds.
type Clock struct {
	dt     float64
	now    float64
	ticks  int32
	paused bool
}

// NewClock creates a clock advancing dt seconds per tick.
func NewClock(dt float64) *Clock {
	return &Clock{dt: dt}
}

// Tick advances the clock one step and returns the new time and the
// elapsed seconds. A paused clock counts the tick but does not advance.
func (c *Clock) Tick() (now, elapsed float64) {
	c.ticks++
	if c.paused {
		return c.now, 0
	}
	c.now += c.dt
	return c.now, c.dt
}

// Now returns the current simulation time.
func (c *Clock) Now() float64 {
	return c.now
}

// DT returns the step size.
func (c *Clock) DT() float64 {
	return c.dt
}

// Ticks returns the number of ticks taken.
func (c *Clock) Ticks() int32 {
	return c.ticks
}

// SetPaused freezes or resumes simulation time.
func (c *Clock) SetPaused(p bool) {
	c.paused = p
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// Set jumps the clock to t without counting a tick.
func (c *Clock) Set(t float64) {
	c.now = t
}

// Advance moves the clock forward by d seconds without counting a tick.
func (c *Clock) Advance(d float64) {
	c.now += d
}
