package particles

import "github.com/go-gl/mathgl/mgl32"

// VerticesPerParticle is the number of vertex records each particle occupies.
// The records share kinematic data and differ only in Corner, so a downstream
// stage can expand them into a camera-facing quad.
const VerticesPerParticle = 4

// DefaultTextureVariants is the number of texture atlas cells a particle can pick from.
const DefaultTextureVariants = 16

// Vertex is one particle vertex record as handed to a VertexSink.
type Vertex struct {
	StartPosition mgl32.Vec3 // render-space launch point
	StartTime     float64    // clock reading at emission

	InitialVelocity mgl32.Vec3
	EndTime         float64 // expiry: StartTime + duration

	TargetVelocity mgl32.Vec3 // asymptotic velocity
	TargetTime     float64    // deceleration time constant (seconds)

	// Emitter tile at emission, so particles stay put when the camera changes tile.
	TileX, TileZ int32

	Corner  uint8 // 0..VerticesPerParticle-1
	Texture uint8 // texture variant

	Color  mgl32.Vec4
	Random float32 // per-particle variation in [0,1)
}

// Duration returns the particle's lifetime in seconds.
func (v *Vertex) Duration() float64 {
	return v.EndTime - v.StartTime
}

// Expired reports whether the particle is past its expiry at time t.
func (v *Vertex) Expired(t float64) bool {
	return v.EndTime <= t
}
