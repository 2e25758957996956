package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

// WindModel produces the render-space wind on X and Z: a base vector plus
// slowly varying gusts.
type WindModel struct {
	base      mgl32.Vec2
	amplitude float64
	frequency float64
	noise     opensimplex.Noise
}

// NewWindModel creates a wind model. frequency is gust features per second.
func NewWindModel(baseX, baseZ, amplitude, frequency float64, seed int64) *WindModel {
	return &WindModel{
		base:      mgl32.Vec2{float32(baseX), float32(baseZ)},
		amplitude: amplitude,
		frequency: frequency,
		noise:     opensimplex.New(seed),
	}
}

// At returns the wind at simulation time t.
func (w *WindModel) At(t float64) mgl32.Vec2 {
	if w.amplitude == 0 {
		return w.base
	}
	x := t * w.frequency
	// Separate rows so the two axes gust independently.
	gx := clampUnit(w.noise.Eval2(x, 0.5))
	gz := clampUnit(w.noise.Eval2(x, 100.5))
	return w.base.Add(mgl32.Vec2{float32(w.amplitude * gx), float32(w.amplitude * gz)})
}

// Base returns the base wind.
func (w *WindModel) Base() mgl32.Vec2 {
	return w.base
}

// SetBase replaces the base wind.
func (w *WindModel) SetBase(x, z float64) {
	w.base = mgl32.Vec2{float32(x), float32(z)}
}

// Gust returns the gust amplitude and frequency.
func (w *WindModel) Gust() (amplitude, frequency float64) {
	return w.amplitude, w.frequency
}

// SetGust replaces the gust parameters.
func (w *WindModel) SetGust(amplitude, frequency float64) {
	w.amplitude = amplitude
	w.frequency = frequency
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
