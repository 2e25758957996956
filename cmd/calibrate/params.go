package main

import (
	"math"

	"github.com/pthm-cable/plume/config"
)

// ParamSpec is one tunable config value and its search bounds.
type ParamSpec struct {
	Name     string
	Path     string // config path, for logging
	Min, Max float64
	Default  float64
	apply    func(cfg *config.Config, v float64)
}

func (s ParamSpec) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// ParamVector maps optimizer coordinates in [0,1] onto config values.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the buffer-sizing parameters, starting from base.
func NewParamVector(base *config.Config) *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{
			Name: "max_particles_per_second", Path: "particles.max_particles_per_second",
			Min: 5, Max: 200, Default: base.Particles.MaxParticlesPerSecond,
			apply: func(cfg *config.Config, v float64) { cfg.Particles.MaxParticlesPerSecond = v },
		},
		{
			Name: "max_duration", Path: "particles.max_duration",
			Min: 1, Max: 20, Default: base.Particles.MaxDuration,
			apply: func(cfg *config.Config, v float64) { cfg.Particles.MaxDuration = v },
		},
	}}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting values.
func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(nil, func(s ParamSpec, _ float64) float64 { return s.Default })
}

// Normalize maps raw values to [0,1] within each parameter's bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(raw, func(s ParamSpec, v float64) float64 { return (v - s.Min) / (s.Max - s.Min) })
}

// Denormalize maps [0,1] coordinates back to raw values.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(unit, func(s ParamSpec, v float64) float64 { return s.Min + v*(s.Max-s.Min) })
}

// Clamp bounds raw values to each parameter's range.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	return pv.each(raw, func(s ParamSpec, v float64) float64 { return s.clamp(v) })
}

func (pv *ParamVector) each(in []float64, f func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		var v float64
		if in != nil {
			v = in[i]
		}
		out[i] = f(s, v)
	}
	return out
}

// ApplyToConfig writes clamped raw values into cfg and recomputes its
// derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) error {
	for i, s := range pv.Specs {
		s.apply(cfg, s.clamp(raw[i]))
	}
	return cfg.Recompute()
}
