package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/plume/config"
	"github.com/pthm-cable/plume/game"
	"github.com/pthm-cable/plume/telemetry"
)

// Cost weights
const (
	throttleWeight = 10.0
	capacityWeight = 0.1 // per multiple of the target held in reserve
)

// EvalResult is one row of the calibration log.
type EvalResult struct {
	Eval             int     `csv:"eval"`
	Cost             float64 `csv:"cost"`
	MaxRate          float64 `csv:"max_particles_per_second"`
	MaxDuration      float64 `csv:"max_duration"`
	MeanLive         float64 `csv:"mean_live"`
	ThrottleFraction float64 `csv:"throttle_fraction"`
	Capacity         int     `csv:"capacity"`
}

// runResult holds the aggregates of one headless run.
type runResult struct {
	meanLive         float64 // mean live particles per emitter
	throttleFraction float64 // throttled updates per emitter update
	capacity         int     // slots per emitter
}

// Cost scores a run against the target live count (lower = better).
func Cost(r runResult, targetLive float64) float64 {
	if targetLive <= 0 {
		return math.Inf(1)
	}
	miss := r.meanLive/targetLive - 1
	capacityCost := capacityWeight * math.Max(0, float64(r.capacity)/targetLive-1)
	return miss*miss + throttleWeight*r.throttleFraction + capacityCost
}

// FitnessEvaluator runs headless simulations and computes their cost.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config

	mu       sync.Mutex
	bestCost float64
	last     EvalResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
		bestCost:   math.Inf(1),
	}
}

// Last returns the aggregates of the most recent evaluation.
func (fe *FitnessEvaluator) Last() EvalResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes the mean cost of a raw parameter vector over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	// Seeds run in parallel; each game owns its world.
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var agg runResult
	var cost float64
	for _, r := range results {
		cost += Cost(r, cfg.Calibrate.TargetLive)
		agg.meanLive += r.meanLive
		agg.throttleFraction += r.throttleFraction
		agg.capacity = r.capacity
	}
	n := float64(len(results))
	cost /= n

	clamped := fe.params.Clamp(x)
	fe.mu.Lock()
	if cost < fe.bestCost {
		fe.bestCost = cost
	}
	fe.last = EvalResult{
		Cost:             cost,
		MaxRate:          clamped[0],
		MaxDuration:      clamped[1],
		MeanLive:         agg.meanLive / n,
		ThrottleFraction: agg.throttleFraction / n,
		Capacity:         agg.capacity,
	}
	fe.mu.Unlock()

	return cost
}

// runSimulation executes a single headless run of the configured length.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Headless: true,
		Config:   cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	maxTicks := int32(cfg.Calibrate.SimSeconds / cfg.Sim.DT)
	for g.Tick() < maxTicks {
		g.UpdateHeadless()
	}

	return summarize(windows, len(g.Emitters()), cfg.Derived.Capacity, int(g.Tick()))
}

// summarize folds window stats into per-emitter aggregates.
func summarize(windows []telemetry.WindowStats, emitters, capacity, ticks int) runResult {
	r := runResult{capacity: capacity}
	if emitters == 0 || ticks == 0 {
		return r
	}

	// Skip the first window while plumes build up
	var live float64
	var throttled, counted int
	for i, w := range windows {
		throttled += w.Throttled
		if i == 0 && len(windows) > 1 {
			continue
		}
		live += w.LiveMean
		counted++
	}
	if counted > 0 {
		r.meanLive = live / float64(counted) / float64(emitters)
	}
	r.throttleFraction = float64(throttled) / float64(ticks*emitters)
	return r
}
