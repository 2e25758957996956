package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TileSize is the edge length of a world tile in metres.
const TileSize = 2048

const halfTile = TileSize / 2

// WorldPosition places an emitter in the tiled world.
//
// Location uses the route convention: X east, Y up, Z north, relative to the
// tile centre. Render space is right-handed with Z pointing south, so every
// conversion to render space negates Z. Rotation is already in render space.
type WorldPosition struct {
	TileX, TileZ int
	Location     mgl32.Vec3
	Rotation     mgl32.Quat
}

// NewWorldPosition creates a position with a heading (radians, about +Y).
func NewWorldPosition(tileX, tileZ int, location mgl32.Vec3, heading float32) WorldPosition {
	return WorldPosition{
		TileX:    tileX,
		TileZ:    tileZ,
		Location: location,
		Rotation: mgl32.QuatRotate(heading, mgl32.Vec3{0, 1, 0}),
	}
}

// RenderMatrix returns the render-space world transform.
func (p WorldPosition) RenderMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(p.Location.X(), p.Location.Y(), -p.Location.Z())
	return translation.Mul4(p.rotation().Mat4())
}

// RenderTranslation returns the render-space location.
func (p WorldPosition) RenderTranslation() mgl32.Vec3 {
	return mgl32.Vec3{p.Location.X(), p.Location.Y(), -p.Location.Z()}
}

func (p WorldPosition) rotation() mgl32.Quat {
	if p.Rotation == (mgl32.Quat{}) {
		return mgl32.QuatIdent()
	}
	return p.Rotation
}

// Normalize folds the location back into [-TileSize/2, TileSize/2) on X and Z,
// moving the tile indices accordingly.
func (p WorldPosition) Normalize() WorldPosition {
	x, tx := foldTile(float64(p.Location.X()))
	z, tz := foldTile(float64(p.Location.Z()))
	p.TileX += tx
	p.TileZ += tz
	p.Location = mgl32.Vec3{float32(x), p.Location.Y(), float32(z)}
	return p
}

func foldTile(v float64) (float64, int) {
	shift := int(math.Floor((v + halfTile) / TileSize))
	return v - float64(shift)*TileSize, shift
}

// Displacement returns the route-convention vector from prev to p, with tile
// changes folded in.
func (p WorldPosition) Displacement(prev WorldPosition) mgl32.Vec3 {
	d := p.Location.Sub(prev.Location)
	d[0] += float32((p.TileX - prev.TileX) * TileSize)
	d[2] += float32((p.TileZ - prev.TileZ) * TileSize)
	return d
}

// VelocityHint derives the emitter's render-space velocity from two
// successive positions. Returns zero when dt is not positive.
func VelocityHint(prev, cur WorldPosition, dt float64) mgl32.Vec3 {
	if dt <= 0 {
		return mgl32.Vec3{}
	}
	d := cur.Displacement(prev).Mul(float32(1 / dt))
	d[2] = -d[2]
	return d
}

// Environment carries the per-tick inputs shared by all emitters.
type Environment struct {
	Time    float64    // seconds since simulation start
	Elapsed float64    // seconds since the previous tick
	Wind    mgl32.Vec2 // render-space wind on X and Z (m/s)
}
