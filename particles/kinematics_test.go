package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func testVertex() Vertex {
	return Vertex{
		StartPosition:   mgl32.Vec3{1, 2, 3},
		StartTime:       10,
		EndTime:         14,
		InitialVelocity: mgl32.Vec3{4, 0, 0},
		TargetVelocity:  mgl32.Vec3{0, 1, 0},
		TargetTime:      0.5,
	}
}

func TestPositionAtStart(t *testing.T) {
	v := testVertex()
	assert.Equal(t, v.StartPosition, v.PositionAt(10))
	assert.Equal(t, v.StartPosition, v.PositionAt(5), "before emission the particle sits at its start")
}

func TestVelocityRelaxesToTarget(t *testing.T) {
	v := testVertex()

	assert.True(t, v.VelocityAt(10).ApproxEqualThreshold(v.InitialVelocity, 1e-6))
	assert.True(t, v.VelocityAt(30).ApproxEqualThreshold(v.TargetVelocity, 1e-4))

	// Travel converges to target*age + (initial-target)*tau.
	far := v.PositionAt(30)
	assert.InDelta(t, 1+4*0.5, far.X(), 1e-3)
	assert.InDelta(t, 2+20-0.5, far.Y(), 1e-3)
}

func TestPositionWithoutDeceleration(t *testing.T) {
	v := testVertex()
	v.TargetTime = 0

	assert.Equal(t, mgl32.Vec3{1, 4, 3}, v.PositionAt(12))
	assert.Equal(t, v.TargetVelocity, v.VelocityAt(11))
}

func TestProgress(t *testing.T) {
	v := testVertex()
	assert.Equal(t, 0.0, v.Progress(9))
	assert.InDelta(t, 0.5, v.Progress(12), 1e-12)
	assert.Equal(t, 1.0, v.Progress(20))

	v.EndTime = v.StartTime
	assert.Equal(t, 1.0, v.Progress(10))
}

func TestCornerOffsets(t *testing.T) {
	seen := map[mgl32.Vec2]bool{}
	for c := uint8(0); c < VerticesPerParticle; c++ {
		v := Vertex{Corner: c}
		seen[v.CornerOffset()] = true
	}
	assert.Len(t, seen, VerticesPerParticle)
}

func TestTileOffset(t *testing.T) {
	v := Vertex{TileX: 2, TileZ: 1}
	assert.Equal(t, mgl32.Vec3{2048, 0, 0}, v.TileOffset(1, 1))
	assert.Equal(t, mgl32.Vec3{0, 0, -2048}, v.TileOffset(2, 0))
}
