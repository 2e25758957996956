package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/camera"
	"github.com/pthm-cable/plume/particles"
)

// ParticleRenderer draws renderable particle ranges as camera-facing quads.
type ParticleRenderer struct {
	drawn int
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Begin resets the per-frame particle count.
func (r *ParticleRenderer) Begin() {
	r.drawn = 0
}

// Drawn returns how many particles were drawn since Begin.
func (r *ParticleRenderer) Drawn() int {
	return r.drawn
}

// Draw renders the particles of one emitter. Must be called inside
// rl.BeginMode3D. nozzleWidth sets the launch size of each puff.
func (r *ParticleRenderer) Draw(cam *camera.Orbit, mirror *particles.Mirror, drawn particles.Range, now float64, nozzleWidth float64) {
	right, up := CameraBasis(cam.View())
	launch := float32(nozzleWidth) / 2

	for _, span := range drawn.Spans() {
		vs := mirror.Vertices(span)
		for i := 0; i+particles.VerticesPerParticle <= len(vs); i += particles.VerticesPerParticle {
			p := vs[i : i+particles.VerticesPerParticle]
			v := &p[0]
			if v.Expired(now) {
				continue
			}

			progress := v.Progress(now)
			center := ParticleCenter(v, now, cam.TileX, cam.TileZ)
			q := Quad(p, center, right, up, HalfSize(launch, progress))

			color := toColor(v.Color, FadeAlpha(v.Color.W(), progress))
			// Two triangles, counter-clockwise as seen from the camera
			rl.DrawTriangle3D(vec3(q[0]), vec3(q[1]), vec3(q[2]), color)
			rl.DrawTriangle3D(vec3(q[0]), vec3(q[2]), vec3(q[3]), color)
			r.drawn++
		}
	}
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func toColor(c mgl32.Vec4, alpha float32) rl.Color {
	return rl.Color{
		R: unit8(c.X()),
		G: unit8(c.Y()),
		B: unit8(c.Z()),
		A: unit8(alpha),
	}
}

// unit8 maps [0, 1] to [0, 255].
func unit8(x float32) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 255
	}
	return uint8(x*255 + 0.5)
}
