package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWindModelCalm(t *testing.T) {
	w := NewWindModel(1.5, -0.5, 0, 0.1, 1)
	for _, tm := range []float64{0, 3.3, 100} {
		if got := w.At(tm); got != (mgl32.Vec2{1.5, -0.5}) {
			t.Errorf("At(%v) = %v, want base", tm, got)
		}
	}
}

func TestWindModelDeterministic(t *testing.T) {
	a := NewWindModel(1, 0, 2, 0.2, 42)
	b := NewWindModel(1, 0, 2, 0.2, 42)
	for i := 0; i < 50; i++ {
		tm := float64(i) * 0.7
		if a.At(tm) != b.At(tm) {
			t.Fatalf("same seed differs at t=%v", tm)
		}
	}
}

func TestWindModelBounded(t *testing.T) {
	w := NewWindModel(1, -1, 3, 0.5, 9)
	var varied bool
	first := w.At(0)
	for i := 0; i < 500; i++ {
		v := w.At(float64(i) * 0.37)
		if math.Abs(float64(v.X())-1) > 3+1e-5 || math.Abs(float64(v.Y())+1) > 3+1e-5 {
			t.Fatalf("gust out of range: %v", v)
		}
		if v != first {
			varied = true
		}
	}
	if !varied {
		t.Error("expected gusts to vary over time")
	}
}

func TestWindModelSetters(t *testing.T) {
	w := NewWindModel(0, 0, 1, 1, 1)
	w.SetBase(2, 3)
	w.SetGust(0, 0.5)

	if w.Base() != (mgl32.Vec2{2, 3}) {
		t.Errorf("base = %v", w.Base())
	}
	if amp, freq := w.Gust(); amp != 0 || freq != 0.5 {
		t.Errorf("gust = (%v, %v)", amp, freq)
	}
	if w.At(10) != w.Base() {
		t.Error("zero amplitude should return the base wind")
	}
}
