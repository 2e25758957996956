package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/camera"
	"github.com/pthm-cable/plume/particles"
	"github.com/pthm-cable/plume/systems"
)

// Marker is an emitter shown in the scene.
type Marker struct {
	Position particles.WorldPosition
	Selected bool
}

// SceneryRenderer draws the ground grid, the track and emitter markers.
type SceneryRenderer struct {
	GridSlices  int32
	GridSpacing float32
	Segments    int
}

// NewSceneryRenderer creates a scenery renderer with a 1 km grid.
func NewSceneryRenderer() *SceneryRenderer {
	return &SceneryRenderer{
		GridSlices:  100,
		GridSpacing: 10,
		Segments:    256,
	}
}

// DrawGrid draws the ground grid around the camera target.
func (s *SceneryRenderer) DrawGrid(cam *camera.Orbit) {
	rl.PushMatrix()
	snap := s.GridSpacing
	rl.Translatef(
		float32(math.Floor(float64(cam.Target.X()/snap)))*snap,
		0,
		float32(math.Floor(float64(cam.Target.Z()/snap)))*snap,
	)
	rl.DrawGrid(s.GridSlices, s.GridSpacing)
	rl.PopMatrix()
}

// DrawTrack draws the track circle.
func (s *SceneryRenderer) DrawTrack(cam *camera.Orbit, track systems.Track) {
	pts := TrackPoints(track, s.Segments, cam.TileX, cam.TileZ)
	color := rl.Color{R: 140, G: 110, B: 80, A: 255}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		rl.DrawLine3D(vec3(a), vec3(b), color)
	}
}

// DrawMarkers draws a post under each emitter.
func (s *SceneryRenderer) DrawMarkers(cam *camera.Orbit, markers []Marker) {
	for _, m := range markers {
		p := m.Position
		top := RenderPoint(p.TileX, p.TileZ, p.RenderTranslation(), cam.TileX, cam.TileZ)
		base := mgl32.Vec3{top.X(), 0, top.Z()}

		color := rl.Color{R: 200, G: 200, B: 200, A: 255}
		if m.Selected {
			color = rl.Yellow
		}
		rl.DrawLine3D(vec3(base), vec3(top), color)
		rl.DrawSphere(vec3(top), 0.4, color)
	}
}

// TrackPoints returns n points around the track in the camera tile's frame.
func TrackPoints(track systems.Track, n, camTileX, camTileZ int) []mgl32.Vec3 {
	if n < 3 {
		n = 3
	}
	pts := make([]mgl32.Vec3, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		route := mgl32.Vec3{
			float32(track.Radius * math.Cos(a)),
			float32(track.Height),
			float32(track.Radius * math.Sin(a)),
		}
		pts[i] = RenderPoint(track.TileX, track.TileZ, mgl32.Vec3{route.X(), route.Y(), -route.Z()}, camTileX, camTileZ)
	}
	return pts
}
