package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// cornerOffsets maps a corner index to its quad offset (unit half-size).
var cornerOffsets = [VerticesPerParticle]mgl32.Vec2{
	{-1, -1},
	{1, -1},
	{1, 1},
	{-1, 1},
}

// CornerOffset returns the quad offset of the vertex's corner.
func (v *Vertex) CornerOffset() mgl32.Vec2 {
	return cornerOffsets[int(v.Corner)%VerticesPerParticle]
}

// Age returns seconds since emission at time t, never negative.
func (v *Vertex) Age(t float64) float64 {
	return math.Max(0, t-v.StartTime)
}

// Progress returns the particle's normalized age in [0, 1].
func (v *Vertex) Progress(t float64) float64 {
	d := v.Duration()
	if d <= 0 {
		return 1
	}
	return math.Min(1, v.Age(t)/d)
}

// VelocityAt returns the particle's velocity at time t. The velocity relaxes
// exponentially from InitialVelocity toward TargetVelocity with time
// constant TargetTime.
func (v *Vertex) VelocityAt(t float64) mgl32.Vec3 {
	if v.TargetTime <= 0 {
		return v.TargetVelocity
	}
	k := float32(math.Exp(-v.Age(t) / v.TargetTime))
	return v.TargetVelocity.Add(v.InitialVelocity.Sub(v.TargetVelocity).Mul(k))
}

// PositionAt returns the particle's render-space position at time t,
// relative to the tile it was emitted in.
func (v *Vertex) PositionAt(t float64) mgl32.Vec3 {
	age := v.Age(t)
	p := v.StartPosition.Add(v.TargetVelocity.Mul(float32(age)))
	if v.TargetTime <= 0 {
		return p
	}
	k := v.TargetTime * (1 - math.Exp(-age/v.TargetTime))
	return p.Add(v.InitialVelocity.Sub(v.TargetVelocity).Mul(float32(k)))
}

// TileOffset returns the render-space offset of the particle's tile from
// the given reference tile.
func (v *Vertex) TileOffset(tileX, tileZ int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((int(v.TileX) - tileX) * TileSize),
		0,
		-float32((int(v.TileZ) - tileZ) * TileSize),
	}
}
