// Wind preview tool - plots the gusting wind over time with sliders.
//
// Usage: go run ./cmd/windpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plume/config"
	"github.com/pthm-cable/plume/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 600
	plotWidth    = 620
	plotHeight   = 400
	plotX        = 10
	plotY        = 40
	samples      = 400
	panelWidth   = windowWidth - plotWidth - 40
)

// WindParams holds the gust model parameters being previewed.
type WindParams struct {
	BaseX, BaseZ float32
	Amplitude    float32
	Frequency    float32
	Span         float32 // seconds shown across the plot
	Seed         float32
}

// sampleWind evaluates the model at n evenly spaced times over [t0, t0+span].
func sampleWind(w *systems.WindModel, t0, span float64, n int) (xs, zs []float32) {
	if n < 2 {
		n = 2
	}
	xs = make([]float32, n)
	zs = make([]float32, n)
	for i := range xs {
		v := w.At(t0 + span*float64(i)/float64(n-1))
		xs[i] = v.X()
		zs[i] = v.Y()
	}
	return xs, zs
}

// plotRow maps a wind value to a screen row, with ±limit spanning the plot.
func plotRow(v, limit float32) float32 {
	if limit <= 0 {
		limit = 1
	}
	return plotY + plotHeight/2 - v/limit*(plotHeight/2)
}

func main() {
	config.MustInit("")
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Wind Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := WindParams{
		BaseX:     float32(cfg.Wind.X),
		BaseZ:     float32(cfg.Wind.Z),
		Amplitude: float32(cfg.Wind.GustAmplitude),
		Frequency: float32(cfg.Wind.GustFrequency),
		Span:      120,
		Seed:      float32(cfg.Wind.Seed),
	}

	var model *systems.WindModel
	var xs, zs []float32
	seed := int64(-1)
	var t0 float32
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			t0 += rl.GetFrameTime()
			needsRegen = true
		}
		if int64(params.Seed) != seed {
			seed = int64(params.Seed)
			model = systems.NewWindModel(0, 0, 0, 0, seed)
			needsRegen = true
		}
		if needsRegen {
			model.SetBase(float64(params.BaseX), float64(params.BaseZ))
			model.SetGust(float64(params.Amplitude), float64(params.Frequency))
			xs, zs = sampleWind(model, float64(t0), float64(params.Span), samples)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Plot
		limit := absMax(params.BaseX, params.BaseZ) + params.Amplitude + 1
		rl.DrawRectangleLines(plotX, plotY, plotWidth, plotHeight, rl.DarkGray)
		zero := int32(plotRow(0, limit))
		rl.DrawLine(plotX, zero, plotX+plotWidth, zero, rl.LightGray)
		step := float32(plotWidth) / float32(len(xs)-1)
		for i := 1; i < len(xs); i++ {
			x0 := plotX + float32(i-1)*step
			x1 := plotX + float32(i)*step
			rl.DrawLineV(rl.Vector2{X: x0, Y: plotRow(xs[i-1], limit)}, rl.Vector2{X: x1, Y: plotRow(xs[i], limit)}, rl.Red)
			rl.DrawLineV(rl.Vector2{X: x0, Y: plotRow(zs[i-1], limit)}, rl.Vector2{X: x1, Y: plotRow(zs[i], limit)}, rl.Blue)
		}
		rl.DrawText("Wind X", plotX, 12, 16, rl.Red)
		rl.DrawText("Wind Z", plotX+80, 12, 16, rl.Blue)
		rl.DrawText(fmt.Sprintf("±%.1f m/s | t = %.1f .. %.1f s", limit, t0, t0+params.Span),
			plotX, plotY+plotHeight+10, 16, rl.DarkGray)

		// Control panel
		panelX := float32(plotX + plotWidth + 20)
		panelY := float32(10)
		rl.DrawText("Wind Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label string, value *float32, lo, hi float32) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 70), Height: 20},
				"", "",
				*value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf("%.2f", v), int32(panelX+float32(panelWidth-60)), int32(panelY+2), 16, rl.DarkGray)
			if v != *value {
				*value = v
				needsRegen = true
			}
			panelY += 35
		}

		slider("Base X (m/s)", &params.BaseX, -15, 15)
		slider("Base Z (m/s)", &params.BaseZ, -15, 15)
		slider("Gust amplitude (m/s)", &params.Amplitude, 0, 10)
		slider("Gust frequency (1/s)", &params.Frequency, 0.005, 1)
		slider("Span (s)", &params.Span, 10, 600)
		slider("Seed", &params.Seed, 0, 100)

		animText := "Animate"
		if animating {
			animText = "Stop"
		}
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, animText) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, "Print YAML") {
			fmt.Printf("wind:\n  x: %.2f\n  z: %.2f\n  gust_amplitude: %.2f\n  gust_frequency: %.3f\n  seed: %d\n",
				params.BaseX, params.BaseZ, params.Amplitude, params.Frequency, seed)
		}

		rl.EndDrawing()
	}
}

func absMax(a, b float32) float32 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}
