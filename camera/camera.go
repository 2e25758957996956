// Package camera provides an orbit camera for viewing emitters in render space.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/particles"
)

// Orbit circles a target point at a given yaw, pitch and distance.
// The target lives in render space relative to the camera tile, so
// particles from other tiles are drawn with their tile offset.
type Orbit struct {
	// Target is the point the camera looks at, relative to its tile
	Target mgl32.Vec3

	// Camera tile, used as the reference for particle tile offsets
	TileX, TileZ int

	// Yaw around +Y and pitch above the ground plane, in radians
	Yaw, Pitch float32

	// Distance from the target in meters
	Distance float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Vertical field of view in radians
	FovY float32

	// Constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32
}

// New creates a camera looking at the origin of tile (0, 0) from 60 m away.
func New(viewportW, viewportH float32) *Orbit {
	return &Orbit{
		Yaw:         math.Pi / 4,
		Pitch:       0.35,
		Distance:    60,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		FovY:        mgl32.DegToRad(45),
		MinDistance: 5,
		MaxDistance: 2000,
		MinPitch:    0.05,
		MaxPitch:    1.5,
	}
}

// Eye returns the camera position relative to its tile.
func (c *Orbit) Eye() mgl32.Vec3 {
	sp, cp := sincos(c.Pitch)
	sy, cy := sincos(c.Yaw)
	dir := mgl32.Vec3{cp * sy, sp, cp * cy}
	return c.Target.Add(dir.Mul(c.Distance))
}

// View returns the view matrix.
func (c *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection for the viewport.
func (c *Orbit) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	return mgl32.Perspective(c.FovY, aspect, 0.5, 20000)
}

// WorldToScreen projects a render-space point (relative to the camera tile)
// to screen pixels. ok is false for points behind the camera.
func (c *Orbit) WorldToScreen(p mgl32.Vec3) (sx, sy float32, ok bool) {
	view := c.View()
	if view.Mul4x1(p.Vec4(1)).Z() >= 0 {
		return 0, 0, false
	}
	w := mgl32.Project(p, view, c.Projection(), 0, 0, int(c.ViewportW), int(c.ViewportH))
	return w.X(), c.ViewportH - w.Y(), true
}

// Follow moves the target onto an emitter position, switching tiles with it.
func (c *Orbit) Follow(pos particles.WorldPosition) {
	c.TileX, c.TileZ = pos.TileX, pos.TileZ
	l := pos.Location
	c.Target = mgl32.Vec3{l.X(), l.Y(), -l.Z()}
}

// Resize updates viewport dimensions.
func (c *Orbit) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Rotate changes yaw and pitch by the given radians. Pitch is clamped.
func (c *Orbit) Rotate(dYaw, dPitch float32) {
	c.Yaw = float32(mod(float64(c.Yaw+dYaw), 2*math.Pi))
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// Pan moves the target along the ground plane, in camera-relative meters
// (dx to the right, dz forward).
func (c *Orbit) Pan(dx, dz float32) {
	sy, cy := sincos(c.Yaw)
	right := mgl32.Vec3{cy, 0, -sy}
	forward := mgl32.Vec3{-sy, 0, -cy}
	c.Target = c.Target.Add(right.Mul(dx)).Add(forward.Mul(dz))
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Orbit) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the distance by the given factor, so factors above 1 move closer.
func (c *Orbit) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to the default orientation around its current target.
func (c *Orbit) Reset() {
	c.Yaw = math.Pi / 4
	c.Pitch = 0.35
	c.Distance = 60
}

func sincos(a float32) (float32, float32) {
	s, co := math.Sincos(float64(a))
	return float32(s), float32(co)
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
