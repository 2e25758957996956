package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Slider ranges
const (
	MaxWind        = 15.0 // m/s either direction
	MaxGust        = 10.0
	MaxVolumeScale = 4.0
)

// ControlsState is the set of values the controls panel edits.
type ControlsState struct {
	WindX, WindZ  float32 // base wind (m/s)
	GustAmplitude float32
	VolumeScale   float32 // multiplier on every emitter's exhaust flow
	Paused        bool
	Reset         bool // set for one frame when the reset button is pressed
}

// ControlsPanel renders raygui sliders for wind and exhaust.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and applies slider edits to state.
// Returns true if anything changed.
func (c *ControlsPanel) Draw(state *ControlsState) bool {
	r := c.renderer
	padding := r.Theme.Padding
	const rowHeight = 38

	c.renderer.DrawPanel(c.x, c.y, c.width, padding*2+24+rowHeight*4+30)

	panelX := float32(c.x + padding)
	panelY := float32(c.y + padding)
	sliderW := float32(c.width - padding*2 - 60)

	rl.DrawText("Controls", int32(panelX), int32(panelY), 16, rl.White)
	panelY += 24

	changed := false
	slider := func(label string, value *float32, lo, hi float32) {
		rl.DrawText(label, int32(panelX), int32(panelY), r.Theme.FontSize, r.Theme.LabelColor)
		panelY += 14
		v := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 16},
			"", "",
			*value, lo, hi,
		)
		rl.DrawText(fmt.Sprintf("%.1f", v), int32(panelX+sliderW+8), int32(panelY+2), r.Theme.FontSize, r.Theme.ValueColor)
		if v != *value {
			*value = v
			changed = true
		}
		panelY += rowHeight - 14
	}

	slider("Wind X (m/s)", &state.WindX, -MaxWind, MaxWind)
	slider("Wind Z (m/s)", &state.WindZ, -MaxWind, MaxWind)
	slider("Gust amplitude", &state.GustAmplitude, 0, MaxGust)
	slider("Exhaust volume x", &state.VolumeScale, 0, MaxVolumeScale)

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 24}, pauseText) {
		state.Paused = !state.Paused
		changed = true
	}
	state.Reset = gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 24}, "Reset")
	if state.Reset {
		changed = true
	}

	return changed
}
