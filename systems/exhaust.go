package systems

import (
	"math"

	"github.com/pthm-cable/plume/components"
	"github.com/pthm-cable/plume/particles"
)

// ExhaustVolume returns the flow (m³/s) at time t. Pulsed exhausts beat
// around their base volume; the result never goes negative.
func ExhaustVolume(e components.Exhaust, t, scale float64) float64 {
	v := e.Volume * scale
	if e.PulseRate > 0 && e.PulseDepth > 0 {
		v *= 1 + e.PulseDepth*math.Sin(2*math.Pi*e.PulseRate*t)
	}
	return math.Max(0, v)
}

// UpdateExhaust computes the current flow and configures the emitter with it.
func UpdateExhaust(e *components.Exhaust, em *particles.Emitter, t, scale float64) {
	e.CurrentVolume = ExhaustVolume(*e, t, scale)
	em.SetOutput(e.Speed, e.CurrentVolume, e.Duration, e.Color)
}
