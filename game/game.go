package game

import (
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/plume/camera"
	"github.com/pthm-cable/plume/components"
	"github.com/pthm-cable/plume/config"
	"github.com/pthm-cable/plume/particles"
	"github.com/pthm-cable/plume/renderer"
	"github.com/pthm-cable/plume/systems"
	"github.com/pthm-cable/plume/telemetry"
	"github.com/pthm-cable/plume/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// Config overrides the global config (nil = config.Cfg()).
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64
	cfg     *config.Config

	// Entity mappers
	emitterMapper *ecs.Map4[
		components.Identity,
		components.Placement,
		components.Exhaust,
		components.Emitter,
	]
	trackMapper *ecs.Map5[
		components.Identity,
		components.Placement,
		components.Exhaust,
		components.Emitter,
		components.TrackFollower,
	]
	emitterFilter *ecs.Filter4[
		components.Identity,
		components.Placement,
		components.Exhaust,
		components.Emitter,
	]
	followerFilter *ecs.Filter2[components.TrackFollower, components.Placement]

	// Emitter entities in registration order
	entities []ecs.Entity

	// Environment
	clock       *systems.Clock
	wind        *systems.WindModel
	track       systems.Track
	currentWind mgl32.Vec2
	volumeScale float64

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string
	samples          []telemetry.EmitterSample

	// Per-emitter update cost
	perf     *PerfStats
	nextDump float64

	// State
	headless       bool
	paused         bool
	stepsPerUpdate int
	drawnParticles int // particles submitted by the last draw cycle

	// Rendering (nil when headless)
	camera           *camera.Orbit
	particleRenderer *renderer.ParticleRenderer
	sceneryRenderer  *renderer.SceneryRenderer
	background       *renderer.Background
	hud              *ui.HUD
	perfPanel        *ui.PerfPanel
	controls         *ui.ControlsPanel
	emitterPanel     *ui.EmitterPanel
	overlays         *ui.OverlayRegistry
	selected         int
	followSelected   bool
	screenWidth      float32
	screenHeight     float32
}

// NewGame creates a graphical game with the global config and a fixed seed.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42, StepsPerUpdate: 1})
}

// NewGameWithOptions creates a game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()

	g := &Game{
		world:   world,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,
		cfg:     cfg,

		emitterMapper: ecs.NewMap4[
			components.Identity,
			components.Placement,
			components.Exhaust,
			components.Emitter,
		](world),
		trackMapper: ecs.NewMap5[
			components.Identity,
			components.Placement,
			components.Exhaust,
			components.Emitter,
			components.TrackFollower,
		](world),
		emitterFilter: ecs.NewFilter4[
			components.Identity,
			components.Placement,
			components.Exhaust,
			components.Emitter,
		](world),
		followerFilter: ecs.NewFilter2[components.TrackFollower, components.Placement](world),

		clock: systems.NewClock(cfg.Sim.DT),
		wind: systems.NewWindModel(
			cfg.Wind.X, cfg.Wind.Z,
			cfg.Wind.GustAmplitude, cfg.Wind.GustFrequency,
			cfg.Wind.Seed,
		),
		track: systems.Track{
			Radius: cfg.Track.Radius,
			Speed:  cfg.Track.Speed,
			Height: cfg.Track.Height,
			TileX:  cfg.Track.TileX,
			TileZ:  cfg.Track.TileZ,
		},
		volumeScale: 1,

		collector:       telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimeTracker: telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, telemetry.BookmarkThresholds{
			SaturationUtil:  cfg.Bookmarks.Saturation.Utilization,
			BurstMultiplier: cfg.Bookmarks.Burst.Multiplier,
			BurstMinEmitted: cfg.Bookmarks.Burst.MinEmitted,
		}),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		snapshotDir:   opts.SnapshotDir,

		perf:     NewPerfStats(),
		nextDump: cfg.Telemetry.DumpInterval,

		headless:       opts.Headless,
		stepsPerUpdate: steps,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if g.snapshotDir == "" {
				g.snapshotDir = om.SnapshotDir()
			}
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.spawnEmitters()

	if !g.headless {
		g.initRendering()
	}

	return g
}

// spawnEmitters creates one entity per configured emitter.
func (g *Game) spawnEmitters() {
	settings := g.cfg.ParticleSettings()
	for _, ec := range g.cfg.Emitters {
		g.spawnEmitter(ec, settings)
	}
	g.samples = make([]telemetry.EmitterSample, len(g.entities))
}

// spawnEmitter creates an emitter entity and registers it with telemetry.
func (g *Game) spawnEmitter(ec config.EmitterConfig, settings particles.Settings) ecs.Entity {
	id := uuid.New()
	index := g.lifetimeTracker.Register(id, ec.Name, g.clock.Ticks())

	noise := particles.NewSimplexNoise(g.rng.Int63(), g.cfg.Particles.NoiseScale)
	em := particles.NewEmitter(settings, particles.Nozzle{
		Direction: ec.DirectionVec(),
		Width:     ec.NozzleWidth,
	}, noise, g.rng)

	ident := components.Identity{ID: id, Name: ec.Name, Kind: ec.Kind}
	exhaust := components.Exhaust{
		Speed:      ec.InitialSpeed,
		Volume:     ec.Volume,
		Duration:   ec.Duration,
		Color:      ec.ColorVec(),
		PulseRate:  ec.PulseRate,
		PulseDepth: ec.PulseDepth,
	}
	emitter := components.Emitter{
		Emitter: em,
		Mirror:  particles.NewMirror(em.Buffer().Capacity()),
		Index:   index,
	}

	var entity ecs.Entity
	switch ec.Kind {
	case config.KindTrack:
		follower := components.TrackFollower{Angle: ec.Phase, Offset: ec.LocationVec()}
		placement := components.Placement{Position: g.track.Position(follower)}
		entity = g.trackMapper.NewEntity(&ident, &placement, &exhaust, &emitter, &follower)
	default:
		placement := components.Placement{Position: g.track.StaticPosition(ec.LocationVec())}
		entity = g.emitterMapper.NewEntity(&ident, &placement, &exhaust, &emitter)
	}

	g.entities = append(g.entities, entity)
	return entity
}

// Update handles input and runs the configured number of simulation steps.
// While paused a single step runs with the clock frozen, so particles hold
// still and draw cycles keep releasing retired slots.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if g.paused {
		g.step()
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs simulation steps without input handling or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Emitters returns the emitter entities in registration order.
func (g *Game) Emitters() []ecs.Entity {
	return g.entities
}

// EmitterState returns the components of an emitter entity.
func (g *Game) EmitterState(e ecs.Entity) (*components.Identity, *components.Placement, *components.Exhaust, *components.Emitter) {
	return g.emitterMapper.Get(e)
}

// SetVolumeScale multiplies every emitter's exhaust flow.
func (g *Game) SetVolumeScale(s float64) {
	if s < 0 {
		s = 0
	}
	g.volumeScale = s
}

// VolumeScale returns the current exhaust flow multiplier.
func (g *Game) VolumeScale() float64 {
	return g.volumeScale
}

// SetPaused freezes or resumes the simulation clock.
func (g *Game) SetPaused(p bool) {
	g.paused = p
	g.clock.SetPaused(p)
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Wind returns the wind used by the last tick.
func (g *Game) Wind() mgl32.Vec2 {
	return g.currentWind
}

// WindModel returns the wind model.
func (g *Game) WindModel() *systems.WindModel {
	return g.wind
}

// DrawnParticles returns how many particles the last draw cycle submitted.
func (g *Game) DrawnParticles() int {
	return g.drawnParticles
}

// Now returns the simulation time in seconds.
func (g *Game) Now() float64 {
	return g.clock.Now()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.clock.Ticks()
}

// Lifetime returns per-emitter lifetime stats in registration order.
func (g *Game) Lifetime() []*telemetry.LifetimeStats {
	return g.lifetimeTracker.All()
}

// Unload writes final output and releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.WriteEmitters(g.lifetimeTracker.All()); err != nil {
			slog.Error("failed to write emitters", "error", err)
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
