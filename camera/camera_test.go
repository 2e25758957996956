package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/particles"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	if cam.Target != (mgl32.Vec3{}) {
		t.Errorf("expected target at origin, got %v", cam.Target)
	}
	if cam.Distance != 60 {
		t.Errorf("expected distance 60, got %f", cam.Distance)
	}
}

func TestEyeDistance(t *testing.T) {
	cam := New(1280, 720)
	cam.Target = mgl32.Vec3{10, 2, -5}

	d := cam.Eye().Sub(cam.Target).Len()
	if math.Abs(float64(d-cam.Distance)) > 1e-3 {
		t.Errorf("eye is %f from target, want %f", d, cam.Distance)
	}
	if cam.Eye().Y() <= cam.Target.Y() {
		t.Error("eye should be above the target for positive pitch")
	}
}

func TestTargetProjectsToScreenCenter(t *testing.T) {
	cam := New(1280, 720)
	cam.Target = mgl32.Vec3{100, 0, 40}

	sx, sy, ok := cam.WorldToScreen(cam.Target)
	if !ok {
		t.Fatal("target should be in front of the camera")
	}
	if math.Abs(float64(sx-640)) > 0.5 || math.Abs(float64(sy-360)) > 0.5 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestBehindCamera(t *testing.T) {
	cam := New(1280, 720)
	behind := cam.Eye().Add(cam.Eye().Sub(cam.Target))

	if _, _, ok := cam.WorldToScreen(behind); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestRotateClampsPitch(t *testing.T) {
	cam := New(1280, 720)

	cam.Rotate(0, 10)
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.Pitch)
	}
	cam.Rotate(0, -10)
	if cam.Pitch != cam.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MinPitch, cam.Pitch)
	}

	cam.Yaw = 0
	cam.Rotate(-0.5, 0)
	if cam.Yaw < 0 || cam.Yaw >= 2*math.Pi {
		t.Errorf("yaw %f not wrapped to [0, 2π)", cam.Yaw)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.ZoomBy(1000)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}
	cam.ZoomBy(0.0001)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}

	before := cam.Distance
	cam.ZoomBy(0)
	if cam.Distance != before {
		t.Error("zero factor should be ignored")
	}
}

func TestPanStaysOnGround(t *testing.T) {
	cam := New(1280, 720)
	cam.Target = mgl32.Vec3{0, 3, 0}

	cam.Pan(5, 7)
	if cam.Target.Y() != 3 {
		t.Errorf("pan changed height: %v", cam.Target)
	}
	if d := cam.Target.Sub(mgl32.Vec3{0, 3, 0}).Len(); math.Abs(float64(d)-math.Hypot(5, 7)) > 1e-3 {
		t.Errorf("pan moved %f, want %f", d, math.Hypot(5, 7))
	}
}

func TestFollowFlipsZ(t *testing.T) {
	cam := New(1280, 720)
	cam.Follow(particles.WorldPosition{TileX: 2, TileZ: -3, Location: mgl32.Vec3{10, 4, 20}})

	if cam.TileX != 2 || cam.TileZ != -3 {
		t.Errorf("tile = (%d, %d), want (2, -3)", cam.TileX, cam.TileZ)
	}
	if cam.Target != (mgl32.Vec3{10, 4, -20}) {
		t.Errorf("target = %v, want (10, 4, -20)", cam.Target)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.Rotate(1, 0.5)
	cam.ZoomBy(3)
	cam.Reset()

	if cam.Yaw != math.Pi/4 || cam.Pitch != 0.35 || cam.Distance != 60 {
		t.Errorf("reset left yaw=%f pitch=%f distance=%f", cam.Yaw, cam.Pitch, cam.Distance)
	}
}
