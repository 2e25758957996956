package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/components"
	"github.com/pthm-cable/plume/particles"
)

func testTrack() Track {
	return Track{Radius: 1500, Speed: 25, Height: 1}
}

func TestTrackPositionNormalized(t *testing.T) {
	p := testTrack().Position(components.TrackFollower{Angle: 0})

	if p.TileX != 1 || p.TileZ != 0 {
		t.Errorf("tile = (%d, %d), want (1, 0)", p.TileX, p.TileZ)
	}
	if math.Abs(float64(p.Location.X())-(1500-2048)) > 1e-3 {
		t.Errorf("x = %v, want %v", p.Location.X(), 1500-2048)
	}
	if math.Abs(float64(p.Location.Y())-1) > 1e-6 {
		t.Errorf("y = %v, want rail height 1", p.Location.Y())
	}
}

func TestTrackHeadingFollowsTravel(t *testing.T) {
	p := testTrack().Position(components.TrackFollower{Angle: 0})

	// At angle 0 the carriage heads north, which is -Z in render space.
	fwd := p.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	if !fwd.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("forward = %v, want (0, 0, -1)", fwd)
	}
}

func TestTrackOffsetInCarriageFrame(t *testing.T) {
	p := testTrack().Position(components.TrackFollower{Angle: 0, Offset: mgl32.Vec3{0, 3, 2}})

	// Two metres forward is two metres north in route coordinates.
	if math.Abs(float64(p.Location.Z())-2) > 1e-4 {
		t.Errorf("z = %v, want 2", p.Location.Z())
	}
	if math.Abs(float64(p.Location.Y())-4) > 1e-5 {
		t.Errorf("y = %v, want 4", p.Location.Y())
	}
}

func TestTrackVelocityAcrossTiles(t *testing.T) {
	track := testTrack()
	f := components.TrackFollower{}
	dt := 0.5

	prev := track.Position(f)
	tiles := map[[2]int]bool{}
	steps := int(2 * math.Pi / (track.AngularSpeed() * dt))
	for i := 0; i < steps; i++ {
		track.AdvanceFollower(&f, dt)
		cur := track.Position(f)
		tiles[[2]int{cur.TileX, cur.TileZ}] = true

		v := particles.VelocityHint(prev, cur, dt)
		if math.Abs(float64(v.Len())-track.Speed) > 0.05 {
			t.Fatalf("step %d: speed = %v, want %v (tile %d,%d)", i, v.Len(), track.Speed, cur.TileX, cur.TileZ)
		}
		prev = cur
	}

	if len(tiles) < 4 {
		t.Errorf("track visited %d tiles, want at least 4", len(tiles))
	}
}

func TestUpdateMotion(t *testing.T) {
	track := testTrack()
	f := components.TrackFollower{}
	var p components.Placement

	UpdateMotion(track, &f, &p, 1)

	want := track.AngularSpeed()
	if math.Abs(f.Angle-want) > 1e-12 {
		t.Errorf("angle = %v, want %v", f.Angle, want)
	}
	if p.Position != track.Position(f) {
		t.Error("placement not updated")
	}
}

func TestStaticPosition(t *testing.T) {
	p := testTrack().StaticPosition(mgl32.Vec3{3000, 20, -10})
	if p.TileX != 1 {
		t.Errorf("tile x = %d, want 1", p.TileX)
	}
	if p.Rotation != mgl32.QuatIdent() {
		t.Error("static emitters are unrotated")
	}
}
