package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plume/telemetry"
)

const (
	hudLeft       = 10
	hudLineHeight = 20
	legendLine    = 16
	footerOffset  = 25
)

// HUDData is the per-frame state shown in the top-left corner.
type HUDData struct {
	Title    string
	Tick     int32
	SimTime  float64
	Emitters int
	Live     int
	Drawn    int
	Capacity int
	WindX    float32
	WindZ    float32
	Steps    int
	FPS      int32
	Paused   bool
}

// Lines returns the status lines under the title.
func (d HUDData) Lines() []string {
	status := "Running"
	if d.Paused {
		status = "PAUSED"
	}
	return []string{
		fmt.Sprintf("Emitters: %d | Live: %d / %d slots | Drawn: %d", d.Emitters, d.Live, d.Capacity, d.Drawn),
		fmt.Sprintf("Tick: %d | %.1fs | Steps: %dx | FPS: %d | Wind: (%.1f, %.1f) m/s",
			d.Tick, d.SimTime, d.Steps, d.FPS, d.WindX, d.WindZ),
		status,
	}
}

// HUD draws the status block and the footer legends.
type HUD struct{}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the title and status lines.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, hudLeft, 10, 20, rl.White)
	lines := data.Lines()
	for i, line := range lines {
		color := rl.LightGray
		if i == len(lines)-1 {
			color = rl.Yellow
		}
		rl.DrawText(line, hudLeft, int32(35+i*hudLineHeight), 16, color)
	}
}

// DrawControls renders the key legend on the bottom line.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, hudLeft, screenHeight-footerOffset, 14, rl.Gray)
}

// DrawLegend stacks lines directly above the key legend.
func (h *HUD) DrawLegend(screenHeight int32, lines []string) {
	top := screenHeight - footerOffset - int32(len(lines))*legendLine
	for i, line := range lines {
		rl.DrawText(line, hudLeft, top+int32(i)*legendLine, 14, rl.Gray)
	}
}

// PerfPanel shows tick timing and the share of each step phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a perf panel at (x, y).
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition moves the panel.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// phaseColor flags phases taking a large share of the tick.
func phaseColor(pct float64) rl.Color {
	switch {
	case pct > 40:
		return rl.Red
	case pct > 20:
		return rl.Orange
	}
	return rl.LightGray
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	const rowHeight = 14
	us := func(d time.Duration) time.Duration { return d.Round(time.Microsecond) }

	x, y := p.x, p.y
	p.renderer.DrawPanel(x-6, y-6, 260, int32(len(telemetry.Phases))*rowHeight+52)

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  p50: %s  p99: %s",
		us(stats.AvgTickDuration), us(stats.P50TickDuration), us(stats.P99TickDuration)),
		x, y, 14, rl.Yellow)
	y += 16

	for _, ph := range telemetry.Phases {
		pct := stats.PhasePct[ph]
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", ph, us(stats.PhaseAvg[ph]), pct),
			x, y, 12, phaseColor(pct))
		y += rowHeight
	}
}
