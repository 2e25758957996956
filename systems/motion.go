package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/components"
	"github.com/pthm-cable/plume/particles"
)

// Track is a circular track centred on a tile centre.
type Track struct {
	Radius float64
	Speed  float64
	Height float64
	TileX  int
	TileZ  int
}

// AngularSpeed returns radians per second along the track.
func (t Track) AngularSpeed() float64 {
	if t.Radius <= 0 {
		return 0
	}
	return t.Speed / t.Radius
}

// AdvanceFollower moves a follower dt seconds along the track.
func (t Track) AdvanceFollower(f *components.TrackFollower, dt float64) {
	f.Angle = math.Mod(f.Angle+t.AngularSpeed()*dt, 2*math.Pi)
}

// Heading returns the carriage heading at angle a: the rotation about +Y that
// turns the carriage's forward axis (+Z) onto the direction of travel.
func (t Track) Heading(a float64) float32 {
	// Travel is counter-clockwise seen from above: route tangent (-sin a, 0, cos a),
	// render tangent (-sin a, 0, -cos a).
	return float32(a + math.Pi)
}

// Position returns the world position of a follower's emitter, normalized so
// the location lies inside its tile.
func (t Track) Position(f components.TrackFollower) particles.WorldPosition {
	heading := t.Heading(f.Angle)
	rot := mgl32.QuatRotate(heading, mgl32.Vec3{0, 1, 0})

	// Offset is given in the carriage frame; rotate in render space, then
	// flip Z back into route convention.
	off := rot.Rotate(f.Offset)
	loc := mgl32.Vec3{
		float32(t.Radius*math.Cos(f.Angle)) + off.X(),
		float32(t.Height) + off.Y(),
		float32(t.Radius*math.Sin(f.Angle)) - off.Z(),
	}

	return particles.WorldPosition{
		TileX:    t.TileX,
		TileZ:    t.TileZ,
		Location: loc,
		Rotation: rot,
	}.Normalize()
}

// StaticPosition returns the world position of a fixed emitter given in
// route coordinates relative to the track tile.
func (t Track) StaticPosition(location mgl32.Vec3) particles.WorldPosition {
	return particles.WorldPosition{
		TileX:    t.TileX,
		TileZ:    t.TileZ,
		Location: location,
		Rotation: mgl32.QuatIdent(),
	}.Normalize()
}

// UpdateMotion advances a track follower and writes its new placement.
func UpdateMotion(track Track, f *components.TrackFollower, p *components.Placement, dt float64) {
	track.AdvanceFollower(f, dt)
	p.Position = track.Position(*f)
}
