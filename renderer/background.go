package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Background draws a vertical sky gradient behind the scene.
type Background struct {
	Top, Horizon rl.Color

	screenW, screenH int32
}

// NewBackground creates a background for the given screen size.
func NewBackground(screenW, screenH int32) *Background {
	return &Background{
		Top:     rl.Color{R: 96, G: 140, B: 190, A: 255},
		Horizon: rl.Color{R: 200, G: 214, B: 226, A: 255},
		screenW: screenW,
		screenH: screenH,
	}
}

// Resize updates the screen dimensions.
func (b *Background) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw fills the screen with the gradient. Call before rl.BeginMode3D.
func (b *Background) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, b.Top, b.Horizon)
}
