package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plume/config"
	"github.com/pthm-cable/plume/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshots (default <output-dir>/snapshots)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")
	volumeScale := flag.Float64("volume-scale", 1, "Initial multiplier on every emitter's exhaust flow")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		runHeadless(opts, *volumeScale, int32(*maxTicks))
		return
	}
	runWindow(opts, *volumeScale, int32(*maxTicks))
}

// runHeadless steps the simulation until maxTicks or an interrupt.
func runHeadless(opts game.Options, volumeScale float64, maxTicks int32) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := game.NewGameWithOptions(opts)
	defer g.Unload()
	g.SetVolumeScale(volumeScale)

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"emitters", len(g.Emitters()),
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	start := time.Now()
	for ctx.Err() == nil {
		g.UpdateHeadless()
		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}

	for _, ls := range g.Lifetime() {
		slog.Info("emitter summary",
			"name", ls.Name,
			"emitted", ls.Emitted,
			"peak_live", ls.PeakLive,
			"peak_util", ls.PeakUtilization,
			"throttled_ticks", ls.ThrottledTicks,
			"idle_ticks", ls.IdleTicks,
			"flush_errors", ls.FlushErrors,
		)
	}
	slog.Info("simulation stopped", "tick", g.Tick(), "sim_time", g.Now(), "wall", time.Since(start).Round(time.Millisecond))
}

// runWindow opens the raylib viewer.
func runWindow(opts game.Options, volumeScale float64, maxTicks int32) {
	cfg := config.Cfg()
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Plume")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()
	g.SetVolumeScale(volumeScale)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}
