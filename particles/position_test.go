package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoldsIntoTile(t *testing.T) {
	p := WorldPosition{TileX: 2, TileZ: -1, Location: mgl32.Vec3{1030, 5, -3000}}.Normalize()

	assert.Equal(t, 3, p.TileX)
	assert.Equal(t, -2, p.TileZ)
	assert.InDelta(t, 1030-2048, p.Location.X(), 1e-3)
	assert.InDelta(t, -3000+2048, p.Location.Z(), 1e-3)
	assert.InDelta(t, 5, p.Location.Y(), 1e-6)
}

func TestVelocityHintAcrossTileBoundary(t *testing.T) {
	prev := WorldPosition{TileX: 0, Location: mgl32.Vec3{1020, 0, 0}}
	cur := WorldPosition{TileX: 1, Location: mgl32.Vec3{-1020, 0, 0}}

	v := VelocityHint(prev, cur, 0.5)
	assert.InDelta(t, 16, v.X(), 1e-3, "8 m in 0.5 s, not -4080 m")
	assert.InDelta(t, 0, v.Z(), 1e-6)
}

func TestVelocityHintFlipsZ(t *testing.T) {
	prev := WorldPosition{Location: mgl32.Vec3{0, 0, 0}}
	cur := WorldPosition{Location: mgl32.Vec3{0, 1, 3}}

	v := VelocityHint(prev, cur, 1)
	assert.InDelta(t, 1, v.Y(), 1e-6)
	assert.InDelta(t, -3, v.Z(), 1e-6, "moving north is -Z in render space")
}

func TestVelocityHintZeroElapsed(t *testing.T) {
	prev := WorldPosition{}
	cur := WorldPosition{Location: mgl32.Vec3{5, 5, 5}}
	assert.Equal(t, mgl32.Vec3{}, VelocityHint(prev, cur, 0))
}

func TestRenderMatrixNegatesZ(t *testing.T) {
	p := WorldPosition{Location: mgl32.Vec3{1, 2, 3}}
	m := p.RenderMatrix()

	assert.Equal(t, mgl32.Vec3{1, 2, -3}, m.Col(3).Vec3())
	assert.Equal(t, p.RenderTranslation(), m.Col(3).Vec3())
	assert.True(t, m.Mat3().ApproxEqual(mgl32.Ident3()), "zero rotation is identity")
}
