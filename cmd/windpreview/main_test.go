package main

import (
	"testing"

	"github.com/pthm-cable/plume/systems"
)

func TestSampleWindSteady(t *testing.T) {
	w := systems.NewWindModel(2, -1, 0, 0.1, 7)
	xs, zs := sampleWind(w, 0, 60, 10)

	if len(xs) != 10 || len(zs) != 10 {
		t.Fatalf("got %d/%d samples, want 10", len(xs), len(zs))
	}
	for i := range xs {
		if xs[i] != 2 || zs[i] != -1 {
			t.Errorf("sample %d = (%v, %v), want (2, -1)", i, xs[i], zs[i])
		}
	}
}

func TestSampleWindGustBounded(t *testing.T) {
	w := systems.NewWindModel(1, 0, 3, 0.2, 7)
	xs, zs := sampleWind(w, 0, 300, 200)

	for i := range xs {
		if xs[i] < -2 || xs[i] > 4 {
			t.Errorf("x[%d] = %v outside base ± amplitude", i, xs[i])
		}
		if zs[i] < -3 || zs[i] > 3 {
			t.Errorf("z[%d] = %v outside base ± amplitude", i, zs[i])
		}
	}
}

func TestPlotRow(t *testing.T) {
	if got := plotRow(0, 5); got != plotY+plotHeight/2 {
		t.Errorf("zero row = %v, want center", got)
	}
	if got := plotRow(5, 5); got != plotY {
		t.Errorf("limit row = %v, want top %v", got, plotY)
	}
}
