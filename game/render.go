package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/plume/camera"
	"github.com/pthm-cable/plume/renderer"
	"github.com/pthm-cable/plume/ui"
)

const controlsLegend = "[Space] Pause  [<>] Steps  [Tab] Select  [Drag] Orbit  [Wheel] Zoom  [WASD] Pan  [Home] Reset  [F11] Fullscreen"

// initRendering creates the camera, renderers and UI panels.
func (g *Game) initRendering() {
	w, h := g.screenWidth, g.screenHeight

	g.camera = camera.New(w, h)
	g.particleRenderer = renderer.NewParticleRenderer()
	g.sceneryRenderer = renderer.NewSceneryRenderer()
	g.background = renderer.NewBackground(int32(w), int32(h))

	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(w)-270, 110)
	g.controls = ui.NewControlsPanel(10, 110, 260)
	g.emitterPanel = ui.NewEmitterPanel(int32(w)-290, int32(h)-300, 280)
	g.overlays = ui.NewOverlayRegistry()

	g.followSelected = g.overlays.IsEnabled(ui.OverlayFollow)
	if len(g.entities) > 0 {
		g.followSelectedEmitter()
	}
}

// layoutPanels moves screen-anchored panels after a resize.
func (g *Game) layoutPanels() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)
	g.perfPanel.SetPosition(w-270, 110)
	g.emitterPanel.SetPosition(w-290, h-300)
}

// followSelectedEmitter points the camera at the selected emitter.
func (g *Game) followSelectedEmitter() {
	if g.selected < 0 || g.selected >= len(g.entities) {
		return
	}
	_, placement, _, _ := g.emitterMapper.Get(g.entities[g.selected])
	g.camera.Follow(placement.Position)
}

// rlCamera converts the orbit camera into a raylib camera.
func rlCamera(c *camera.Orbit) rl.Camera3D {
	eye := c.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(eye.X(), eye.Y(), eye.Z()),
		Target:     rl.NewVector3(c.Target.X(), c.Target.Y(), c.Target.Z()),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       mgl32.RadToDeg(c.FovY),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the scene and UI.
func (g *Game) Draw() {
	if g.followSelected {
		g.followSelectedEmitter()
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.background.Draw()

	rl.BeginMode3D(rlCamera(g.camera))
	g.drawScene()
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawScene draws scenery and every emitter's renderable particles.
func (g *Game) drawScene() {
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.sceneryRenderer.DrawGrid(g.camera)
	}
	if g.overlays.IsEnabled(ui.OverlayTrack) {
		g.sceneryRenderer.DrawTrack(g.camera, g.track)
	}

	now := g.clock.Now()
	markers := make([]renderer.Marker, 0, len(g.entities))
	g.particleRenderer.Begin()
	for i, e := range g.entities {
		_, placement, _, emitter := g.emitterMapper.Get(e)
		g.particleRenderer.Draw(g.camera, emitter.Mirror, emitter.Drawn, now, emitter.Emitter.Nozzle().Width)
		markers = append(markers, renderer.Marker{Position: placement.Position, Selected: i == g.selected})
	}

	if g.overlays.IsEnabled(ui.OverlayMarkers) {
		g.sceneryRenderer.DrawMarkers(g.camera, markers)
	}
}

// drawUI draws the HUD and enabled panels.
func (g *Game) drawUI() {
	live, capacity := 0, 0
	for _, e := range g.entities {
		_, _, _, emitter := g.emitterMapper.Get(e)
		st := emitter.Emitter.Stats()
		live += st.Live
		capacity += st.Capacity
	}

	g.hud.Draw(ui.HUDData{
		Title:    "Plume",
		Tick:     g.clock.Ticks(),
		SimTime:  g.clock.Now(),
		Emitters: len(g.entities),
		Live:     live,
		Drawn:    g.particleRenderer.Drawn(),
		Capacity: capacity,
		WindX:    g.currentWind.X(),
		WindZ:    g.currentWind.Y(),
		Steps:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayEmitter) && g.selected < len(g.entities) {
		view := g.emitterView(g.selected)
		g.emitterPanel.Draw(&view)
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.drawControls()
	}

	g.hud.DrawLegend(int32(g.screenHeight), g.overlays.Legend())
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

// drawControls draws the controls panel and applies its edits.
func (g *Game) drawControls() {
	base := g.wind.Base()
	amplitude, frequency := g.wind.Gust()
	state := ui.ControlsState{
		WindX:         base.X(),
		WindZ:         base.Y(),
		GustAmplitude: float32(amplitude),
		VolumeScale:   float32(g.volumeScale),
		Paused:        g.paused,
	}
	if !g.controls.Draw(&state) {
		return
	}

	g.wind.SetBase(float64(state.WindX), float64(state.WindZ))
	g.wind.SetGust(float64(state.GustAmplitude), frequency)
	g.SetVolumeScale(float64(state.VolumeScale))
	if state.Paused != g.paused {
		g.SetPaused(state.Paused)
	}
	if state.Reset {
		g.resetControls()
	}
}

// resetControls restores wind and volume to their configured values.
func (g *Game) resetControls() {
	g.wind.SetBase(g.cfg.Wind.X, g.cfg.Wind.Z)
	g.wind.SetGust(g.cfg.Wind.GustAmplitude, g.cfg.Wind.GustFrequency)
	g.SetVolumeScale(1)
}

// emitterView collects the panel data of the i-th emitter.
func (g *Game) emitterView(i int) ui.EmitterView {
	ident, placement, exhaust, emitter := g.emitterMapper.Get(g.entities[i])
	buf := emitter.Emitter.Buffer()
	c := exhaust.Color
	return ui.EmitterView{
		Name:        fmt.Sprintf("%s (%d/%d)", ident.Name, i+1, len(g.entities)),
		Kind:        ident.Kind,
		TileX:       placement.Position.TileX,
		TileZ:       placement.Position.TileZ,
		Rate:        buf.Rate(),
		Volume:      exhaust.CurrentVolume,
		BaseVolume:  exhaust.Volume,
		Color:       [4]float32{c.X(), c.Y(), c.Z(), c.W()},
		Cursors:     buf.Cursors(),
		Stats:       emitter.Emitter.Stats(),
		FlushErrors: emitter.FlushErrors,
	}
}
