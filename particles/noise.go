package particles

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Noise is a deterministic smooth 1-D noise function with values in [-1, 1].
type Noise interface {
	Eval(x float64) float64
}

// Rand is the uniform random source used for jitter and texture variants.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SimplexNoise samples OpenSimplex noise along a line.
type SimplexNoise struct {
	noise opensimplex.Noise
	scale float64
}

// NewSimplexNoise creates a noise source. scale is the number of noise
// features per second of input.
func NewSimplexNoise(seed int64, scale float64) *SimplexNoise {
	if scale <= 0 {
		scale = 1
	}
	return &SimplexNoise{
		noise: opensimplex.New(seed),
		scale: scale,
	}
}

// Eval returns the noise value at x, clamped to [-1, 1].
func (n *SimplexNoise) Eval(x float64) float64 {
	// Offset y off the lattice so the line never sits on a zero-gradient row.
	v := n.noise.Eval2(x*n.scale, 0.5)
	return math.Max(-1, math.Min(1, v))
}

// ConstantNoise always returns the same value. Useful for tests and for
// emitters with turbulence disabled.
type ConstantNoise float64

// Eval returns the constant.
func (c ConstantNoise) Eval(float64) float64 {
	return float64(c)
}
