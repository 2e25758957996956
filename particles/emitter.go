package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Nozzle describes where and how an emitter releases particles, in the
// emitter's local frame.
type Nozzle struct {
	Location  mgl32.Vec3
	Direction mgl32.Vec3
	Width     float64 // metres; one particle carries Width³ of exhaust
}

// Emitter couples a Buffer with a moving position source. It derives the
// velocity hint from successive positions and converts volumetric exhaust
// flow into an emission rate.
type Emitter struct {
	buffer *Buffer
	nozzle Nozzle

	last   WorldPosition
	primed bool
}

// NewEmitter creates an emitter with its own buffer.
func NewEmitter(settings Settings, nozzle Nozzle, noise Noise, rng Rand) *Emitter {
	if l := nozzle.Direction.Len(); l > 0 {
		nozzle.Direction = nozzle.Direction.Mul(1 / l)
	}
	return &Emitter{
		buffer: NewBuffer(settings, nozzle.Location, noise, rng),
		nozzle: nozzle,
	}
}

// Buffer returns the emitter's particle buffer.
func (e *Emitter) Buffer() *Buffer {
	return e.buffer
}

// Nozzle returns the emitter's nozzle.
func (e *Emitter) Nozzle() Nozzle {
	return e.nozzle
}

// Position returns the position seen on the last update.
func (e *Emitter) Position() WorldPosition {
	return e.last
}

// RateForVolume converts an exhaust flow (m³/s) into particles per second for
// a nozzle of the given width.
func RateForVolume(volumeM3pS, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return volumeM3pS / math.Pow(width, 3)
}

// SetOutput configures the emitter from physical exhaust quantities: launch
// speed along the nozzle (m/s), flow (m³/s), particle lifetime (s) and color.
func (e *Emitter) SetOutput(speed, volumeM3pS, duration float64, color mgl32.Vec4) {
	velocity := e.nozzle.Direction.Mul(float32(speed))
	e.buffer.ConfigureOutput(velocity, RateForVolume(volumeM3pS, e.nozzle.Width), duration, color)
}

// Update advances the buffer for one tick with the emitter at pos.
//
// The first update starts the emission baseline at env.Time, so an emitter
// created late in a session does not emit a backlog since time zero.
func (e *Emitter) Update(env Environment, pos WorldPosition) {
	if !e.primed {
		e.buffer.Reset(env.Time)
		e.last = pos
		e.primed = true
	}
	hint := VelocityHint(e.last, pos, env.Elapsed)
	e.last = pos
	e.buffer.Update(env, pos, hint)
}

// Flush uploads the pending particles to sink.
func (e *Emitter) Flush(sink VertexSink) error {
	return e.buffer.FlushPending(sink)
}

// Renderable returns the draw range and counts a draw cycle.
func (e *Emitter) Renderable() Range {
	return e.buffer.RenderableRange()
}

// Stats returns the buffer's counters.
func (e *Emitter) Stats() Stats {
	return e.buffer.Stats()
}
