package particles

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateForVolume(t *testing.T) {
	assert.InDelta(t, 8, RateForVolume(1, 0.5), 1e-12)
	assert.InDelta(t, 0.3, RateForVolume(0.3, 1), 1e-12)
	assert.Zero(t, RateForVolume(1, 0))
}

func TestNewEmitterNormalizesDirection(t *testing.T) {
	e := NewEmitter(DefaultSettings(), Nozzle{Direction: mgl32.Vec3{0, 3, 4}, Width: 1}, ConstantNoise(0), midRand{})
	assert.InDelta(t, 1, e.Nozzle().Direction.Len(), 1e-6)
}

func TestEmitterSetOutput(t *testing.T) {
	e := NewEmitter(DefaultSettings(), Nozzle{Direction: mgl32.Vec3{0, 1, 0}, Width: 0.5}, ConstantNoise(0), midRand{})
	e.SetOutput(3, 2, 1, mgl32.Vec4{1, 1, 1, 1})
	assert.InDelta(t, 16, e.Buffer().Rate(), 1e-9)

	e.SetOutput(3, 100, 1, mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, DefaultSettings().MaxParticlesPerSecond, e.Buffer().Rate(), "clamped to the ceiling")
}

func TestEmitterFirstUpdateDoesNotBurst(t *testing.T) {
	e := NewEmitter(DefaultSettings(), Nozzle{Direction: mgl32.Vec3{0, 1, 0}, Width: 1}, ConstantNoise(0), midRand{})
	e.SetOutput(2, 8, 2, mgl32.Vec4{1, 1, 1, 1})

	pos := NewWorldPosition(0, 0, mgl32.Vec3{0, 0, 0}, 0)
	e.Update(Environment{Time: 100, Elapsed: 0.1}, pos)
	assert.Zero(t, e.Stats().Emitted)

	e.Update(Environment{Time: 100.5, Elapsed: 0.5}, pos)
	assert.Equal(t, 4, e.Stats().Emitted)
}

func TestEmitterCarriesMotionIntoParticles(t *testing.T) {
	s := DefaultSettings()
	s.InitialSpread = 0
	e := NewEmitter(s, Nozzle{Direction: mgl32.Vec3{0, 1, 0}, Width: 1}, ConstantNoise(0), midRand{})
	e.SetOutput(0, 1, 2, mgl32.Vec4{1, 1, 1, 1})

	e.Update(Environment{Time: 1, Elapsed: 1}, NewWorldPosition(0, 0, mgl32.Vec3{0, 0, 0}, 0))
	moved := NewWorldPosition(0, 0, mgl32.Vec3{10, 0, 0}, 0)
	e.Update(Environment{Time: 2, Elapsed: 1}, moved)

	require.Equal(t, 1, e.Stats().Emitted)
	v := e.Buffer().Vertices(Span{Start: 0, Count: 1})[0]
	assert.InDelta(t, 10, v.InitialVelocity.X(), 1e-5)
	assert.Equal(t, moved, e.Position())
}

func TestEmitterFlushIntoMirror(t *testing.T) {
	e := NewEmitter(DefaultSettings(), Nozzle{Direction: mgl32.Vec3{0, 1, 0}, Width: 1}, ConstantNoise(0), midRand{})
	e.SetOutput(1, 5, 2, mgl32.Vec4{1, 1, 1, 1})
	mirror := NewMirror(e.Buffer().Capacity())

	pos := NewWorldPosition(0, 0, mgl32.Vec3{}, 0)
	e.Update(Environment{Time: 0, Elapsed: 0}, pos)
	e.Update(Environment{Time: 1, Elapsed: 1}, pos)
	require.NoError(t, e.Flush(mirror))

	r := e.Renderable()
	assert.Equal(t, 5, r.Count())
	assert.Equal(t, 1, mirror.Writes())
	assert.Equal(t, 5*VerticesPerParticle, mirror.Written())
	assert.Equal(t, e.Buffer().Vertices(r.First), mirror.Vertices(r.First))
}

func TestMirrorRejectsOverflow(t *testing.T) {
	m := NewMirror(2)
	err := m.WriteVertices(6, make([]Vertex, 4))
	assert.True(t, errors.Is(err, ErrShortWrite))
	assert.Zero(t, m.Writes())
}
