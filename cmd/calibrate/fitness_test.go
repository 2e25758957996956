package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/plume/config"
	"github.com/pthm-cable/plume/telemetry"
)

func TestCost(t *testing.T) {
	tests := []struct {
		name string
		run  runResult
		want float64
	}{
		{"on target", runResult{meanLive: 100, capacity: 100}, 0},
		{"half target", runResult{meanLive: 50, capacity: 100}, 0.25},
		{"throttled", runResult{meanLive: 100, throttleFraction: 0.1, capacity: 100}, 1},
		{"oversized", runResult{meanLive: 100, capacity: 300}, 0.2},
	}
	for _, tt := range tests {
		got := Cost(tt.run, 100)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: Cost = %v, want %v", tt.name, got, tt.want)
		}
	}

	if !math.IsInf(Cost(runResult{}, 0), 1) {
		t.Error("zero target should cost +Inf")
	}
}

func TestSummarizeSkipsWarmupWindow(t *testing.T) {
	windows := []telemetry.WindowStats{
		{LiveMean: 10, Throttled: 6},
		{LiveMean: 200},
		{LiveMean: 400},
	}
	r := summarize(windows, 2, 500, 300)

	if r.meanLive != 150 {
		t.Errorf("meanLive = %v, want 150", r.meanLive)
	}
	if r.throttleFraction != 0.01 {
		t.Errorf("throttleFraction = %v, want 0.01", r.throttleFraction)
	}
	if r.capacity != 500 {
		t.Errorf("capacity = %d, want 500", r.capacity)
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	pv := NewParamVector(cfg)

	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}

	if err := pv.ApplyToConfig(cfg, []float64{1000, 4}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Particles.MaxParticlesPerSecond != 200 {
		t.Errorf("rate = %v, want clamp to 200", cfg.Particles.MaxParticlesPerSecond)
	}
	if cfg.Derived.Capacity != 800 {
		t.Errorf("capacity = %d, want 800", cfg.Derived.Capacity)
	}
}
