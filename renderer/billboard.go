package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/particles"
)

// Growth is how much a particle's half-size grows over its lifetime,
// relative to its launch size.
const Growth = 3.0

// CameraBasis returns the world-space right and up axes of a view matrix.
// Quads spanned by them always face the camera.
func CameraBasis(view mgl32.Mat4) (right, up mgl32.Vec3) {
	return view.Row(0).Vec3(), view.Row(1).Vec3()
}

// RenderPoint moves a render-space location on tile (tileX, tileZ) into
// the frame of the camera tile.
func RenderPoint(tileX, tileZ int, p mgl32.Vec3, camTileX, camTileZ int) mgl32.Vec3 {
	return p.Add(mgl32.Vec3{
		float32((tileX - camTileX) * particles.TileSize),
		0,
		-float32((tileZ - camTileZ) * particles.TileSize),
	})
}

// ParticleCenter evaluates a particle's position at now in the camera tile's frame.
func ParticleCenter(v *particles.Vertex, now float64, camTileX, camTileZ int) mgl32.Vec3 {
	return v.PositionAt(now).Add(v.TileOffset(camTileX, camTileZ))
}

// HalfSize returns a particle's billboard half-size at the given progress.
func HalfSize(launch float32, progress float64) float32 {
	return launch * (1 + Growth*float32(progress))
}

// FadeAlpha returns the particle's alpha at the given progress, fading
// linearly to zero at expiry.
func FadeAlpha(alpha float32, progress float64) float32 {
	a := alpha * float32(1-progress)
	if a < 0 {
		return 0
	}
	return a
}

// Quad expands the four vertex records of one particle into corner positions,
// the same way a vertex shader would: each record offsets the shared center
// along the camera axes by its corner.
func Quad(vs []particles.Vertex, center, right, up mgl32.Vec3, half float32) [particles.VerticesPerParticle]mgl32.Vec3 {
	var q [particles.VerticesPerParticle]mgl32.Vec3
	for i := range q {
		off := vs[i].CornerOffset()
		q[vs[i].Corner%particles.VerticesPerParticle] = center.
			Add(right.Mul(off.X() * half)).
			Add(up.Mul(off.Y() * half))
	}
	return q
}
