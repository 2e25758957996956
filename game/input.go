package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plume/ui"
)

// Camera input rates
const (
	orbitSpeed = 0.005 // radians per pixel of right-drag
	panSpeed   = 0.02  // fraction of camera distance per frame
	maxSteps   = 10
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.SetPaused(!g.paused)
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxSteps {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) && len(g.entities) > 0 {
		g.selected = (g.selected + 1) % len(g.entities)
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, enabled, ok := g.overlays.HandleKeyPress(key); ok && id == ui.OverlayFollow {
			g.followSelected = enabled
		}
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.background.Resize(int32(w), int32(h))
	g.layoutPanels()
}

// handleCameraInput processes orbit, pan and zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Right-drag orbits; the left button belongs to the controls panel
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Rotate(-d.X*orbitSpeed, d.Y*orbitSpeed)
	}

	// Panning detaches the camera from the selected emitter
	step := g.camera.Distance * panSpeed
	var dx, dz float32
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		dx += step
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		dx -= step
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		dz += step
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		dz -= step
	}
	if dx != 0 || dz != 0 {
		g.camera.Pan(dx, dz)
		g.followSelected = false
		g.overlays.SetEnabled(ui.OverlayFollow, false)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
		g.followSelected = g.overlays.IsEnabled(ui.OverlayFollow)
	}
}
