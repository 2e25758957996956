// Package main tunes the particle buffer ceiling and lifetime cap so that
// emitters hold a target number of live particles without throttling.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/plume/config"
)

// shortDuration prints d as 1h02m03s, or 2m03s under an hour.
func shortDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// progress tracks evaluations, the best point so far and the log file.
type progress struct {
	budget int
	start  time.Time
	out    io.Writer

	evals    int
	bestCost float64
	best     []float64
}

func newProgress(budget int, out io.Writer) *progress {
	return &progress{budget: budget, start: time.Now(), out: out, bestCost: math.Inf(1)}
}

// record logs one evaluation and keeps the best parameters.
func (p *progress) record(row EvalResult, raw []float64) {
	p.evals++
	row.Eval = p.evals
	if row.Cost < p.bestCost {
		p.bestCost = row.Cost
		p.best = raw
	}

	write := gocsv.MarshalWithoutHeaders
	if p.evals == 1 {
		write = gocsv.Marshal
	}
	if err := write([]EvalResult{row}, p.out); err != nil {
		log.Printf("writing calibrate log: %v", err)
	}

	elapsed := time.Since(p.start)
	eta := time.Duration(p.budget-p.evals) * (elapsed / time.Duration(p.evals))
	fmt.Printf("eval %d/%d rate=%.1f duration=%.2f live=%.1f throttle=%.3f cost=%.4f best=%.4f elapsed=%s eta=%s\n",
		p.evals, p.budget, row.MaxRate, row.MaxDuration, row.MeanLive, row.ThrottleFraction,
		row.Cost, p.bestCost, shortDuration(elapsed), shortDuration(eta))
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 0, "Maximum number of evaluations (0 = use config)")
	targetLive := flag.Float64("target-live", 0, "Desired mean live particles per emitter (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}

	base := config.Cfg().Clone()
	if *targetLive > 0 {
		base.Calibrate.TargetLive = *targetLive
	}
	budget := base.Calibrate.MaxEvaluations
	if *maxEvals > 0 {
		budget = *maxEvals
	}

	params := NewParamVector(base)
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = 42 + int64(i)*1000
	}
	evaluator := NewFitnessEvaluator(params, evalSeeds, base)

	logFile, err := os.Create(filepath.Join(*outputDir, "calibrate_log.csv"))
	if err != nil {
		log.Fatalf("creating calibrate log: %v", err)
	}
	defer logFile.Close()
	prog := newProgress(budget, logFile)

	// The optimizer works in unit coordinates; the evaluator takes raw values.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			cost := evaluator.Evaluate(raw)
			prog.record(evaluator.Last(), params.Clamp(raw))
			return cost
		},
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   4 + 3*params.Dim()/2,
	}

	fmt.Printf("calibrating %d parameters toward %.0f live particles per emitter (evals=%d, seeds=%d)\n",
		params.Dim(), base.Calibrate.TargetLive, budget, *seeds)

	// Evaluations stay sequential; each one runs its seeds in parallel.
	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: budget}, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	best := prog.best
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\ndone: %d evaluations in %s, best cost %.4f\n", prog.evals, shortDuration(time.Since(prog.start)), prog.bestCost)
	for i, spec := range params.Specs {
		fmt.Printf("  %s = %.4f\n", spec.Path, best[i])
	}

	bestCfg := base.Clone()
	if err := params.ApplyToConfig(bestCfg, best); err != nil {
		log.Fatalf("applying best parameters: %v", err)
	}
	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		log.Fatalf("writing best config: %v", err)
	}
	fmt.Printf("best config written to %s\n", out)
}
