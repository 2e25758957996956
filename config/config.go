// Package config provides configuration loading and access for the scenery simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/plume/particles"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Emitter kinds.
const (
	KindStatic = "static" // fixed in place, e.g. a factory chimney
	KindTrack  = "track"  // carried around the track, e.g. a locomotive stack
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Particles ParticlesConfig `yaml:"particles"`
	Wind      WindConfig      `yaml:"wind"`
	Track     TrackConfig     `yaml:"track"`
	Emitters  []EmitterConfig `yaml:"emitters"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`
	Calibrate CalibrateConfig `yaml:"calibrate"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds simulation clock parameters.
type SimConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// ParticlesConfig holds the tuning shared by every emitter's particle buffer.
type ParticlesConfig struct {
	MaxParticlesPerSecond float64 `yaml:"max_particles_per_second"` // rate ceiling, sizes the buffer
	MaxDuration           float64 `yaml:"max_duration"`             // longest lifetime in seconds, sizes the buffer
	InitialSpread         float64 `yaml:"initial_spread"`           // X/Z jitter on launch velocity (m/s)
	TargetSpread          float64 `yaml:"target_spread"`            // turbulence amplitude on target velocity (m/s)
	DurationVariation     float64 `yaml:"duration_variation"`       // 0.5 = lifetimes vary by ±50%
	RiseSpeed             float64 `yaml:"rise_speed"`               // asymptotic upward velocity (m/s)
	DecelerationTime      float64 `yaml:"deceleration_time"`        // launch -> rise blending time constant
	IdleThreshold         float64 `yaml:"idle_threshold"`           // rates below this emit nothing
	GraceTicks            int     `yaml:"grace_ticks"`              // draw cycles before a retired slot is reused
	TextureVariants       int     `yaml:"texture_variants"`
	NoiseScale            float64 `yaml:"noise_scale"` // turbulence features per second
}

// WindConfig holds the wind model parameters.
type WindConfig struct {
	X             float64 `yaml:"x"` // base wind toward render +X (m/s)
	Z             float64 `yaml:"z"` // base wind toward render +Z (m/s)
	GustAmplitude float64 `yaml:"gust_amplitude"`
	GustFrequency float64 `yaml:"gust_frequency"` // gust features per second
	Seed          int64   `yaml:"seed"`
}

// TrackConfig describes the circular track that carries moving emitters.
type TrackConfig struct {
	Radius float64 `yaml:"radius"` // metres
	Speed  float64 `yaml:"speed"`  // m/s along the track
	Height float64 `yaml:"height"` // rail height above ground
	TileX  int     `yaml:"tile_x"` // tile holding the track centre
	TileZ  int     `yaml:"tile_z"`
}

// EmitterConfig describes one scenery emitter.
type EmitterConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // static or track

	Location  [3]float64 `yaml:"location"`  // static: route position; track: offset from the carriage
	Direction [3]float64 `yaml:"direction"` // nozzle direction, emitter-local
	Phase     float64    `yaml:"phase"`     // track: starting angle (radians)

	NozzleWidth  float64    `yaml:"nozzle_width"`  // metres
	InitialSpeed float64    `yaml:"initial_speed"` // m/s along the nozzle
	Volume       float64    `yaml:"volume"`        // exhaust flow m³/s
	Duration     float64    `yaml:"duration"`      // particle lifetime (s)
	Color        [4]float64 `yaml:"color"`

	PulseRate  float64 `yaml:"pulse_rate"`  // exhaust beats per second (0 = steady)
	PulseDepth float64 `yaml:"pulse_depth"` // 0..1, fraction of volume modulated by the beat
}

// LocationVec returns the configured location as a vector.
func (e EmitterConfig) LocationVec() mgl32.Vec3 {
	return mgl32.Vec3{float32(e.Location[0]), float32(e.Location[1]), float32(e.Location[2])}
}

// DirectionVec returns the configured nozzle direction as a vector.
func (e EmitterConfig) DirectionVec() mgl32.Vec3 {
	return mgl32.Vec3{float32(e.Direction[0]), float32(e.Direction[1]), float32(e.Direction[2])}
}

// ColorVec returns the configured RGBA color as a vector.
func (e EmitterConfig) ColorVec() mgl32.Vec4 {
	return mgl32.Vec4{float32(e.Color[0]), float32(e.Color[1]), float32(e.Color[2]), float32(e.Color[3])}
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	DumpInterval        float64 `yaml:"dump_interval"` // seconds between emitter state dumps (0 = off)
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	Saturation SaturationConfig `yaml:"saturation"`
	Burst      BurstConfig      `yaml:"burst"`
}

// SaturationConfig holds saturation detection parameters.
type SaturationConfig struct {
	Utilization float64 `yaml:"utilization"` // p90 utilization that counts as saturated
}

// BurstConfig holds burst detection parameters.
type BurstConfig struct {
	Multiplier float64 `yaml:"multiplier"`  // emitted vs rolling average
	MinEmitted int     `yaml:"min_emitted"` // ignore bursts smaller than this
}

// CalibrateConfig holds cmd/calibrate parameters.
type CalibrateConfig struct {
	TargetLive     float64 `yaml:"target_live"`     // desired mean live particles per emitter
	SimSeconds     float64 `yaml:"sim_seconds"`     // simulated time per evaluation
	MaxEvaluations int     `yaml:"max_evaluations"` // optimizer budget
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32        // Sim.DT as float32
	ScreenW32    float32        // Screen.Width as float32
	ScreenH32    float32        // Screen.Height as float32
	Capacity     int            // slots per emitter buffer
	EmitterIndex map[string]int // name -> index into Emitters
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file. A user emitters list
		// replaces the default list as a whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.DT <= 0 {
		return fmt.Errorf("sim.dt must be positive, got %v", c.Sim.DT)
	}
	if c.Particles.MaxParticlesPerSecond <= 0 || c.Particles.MaxDuration <= 0 {
		return fmt.Errorf("particles: max_particles_per_second and max_duration must be positive")
	}
	seen := make(map[string]bool, len(c.Emitters))
	for i, e := range c.Emitters {
		if e.Name == "" {
			return fmt.Errorf("emitters[%d]: missing name", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("emitters[%d]: duplicate name %q", i, e.Name)
		}
		seen[e.Name] = true
		if e.Kind != KindStatic && e.Kind != KindTrack {
			return fmt.Errorf("emitter %q: unknown kind %q", e.Name, e.Kind)
		}
		if e.NozzleWidth <= 0 {
			return fmt.Errorf("emitter %q: nozzle_width must be positive", e.Name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Sim.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Capacity = particles.CapacityFor(c.Particles.MaxParticlesPerSecond, c.Particles.MaxDuration)

	// Lifetimes beyond the sizing duration would overrun the buffer.
	for i := range c.Emitters {
		if c.Emitters[i].Duration > c.Particles.MaxDuration {
			c.Emitters[i].Duration = c.Particles.MaxDuration
		}
		if c.Emitters[i].Color == ([4]float64{}) {
			c.Emitters[i].Color = [4]float64{1, 1, 1, 1}
		}
	}

	c.Derived.EmitterIndex = make(map[string]int, len(c.Emitters))
	for i, e := range c.Emitters {
		c.Derived.EmitterIndex[e.Name] = i
	}
}

// ParticleSettings converts the particles section into buffer settings.
func (c *Config) ParticleSettings() particles.Settings {
	p := c.Particles
	return particles.Settings{
		MaxParticlesPerSecond: p.MaxParticlesPerSecond,
		MaxDuration:           p.MaxDuration,
		InitialSpread:         p.InitialSpread,
		TargetSpread:          p.TargetSpread,
		DurationVariation:     p.DurationVariation,
		TargetVelocity:        mgl32.Vec3{0, float32(p.RiseSpeed), 0},
		DecelerationTime:      p.DecelerationTime,
		IdleThreshold:         p.IdleThreshold,
		GraceTicks:            p.GraceTicks,
		TextureVariants:       p.TextureVariants,
	}
}

// Clone returns a deep copy, safe to modify without touching the original.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Emitters = append([]EmitterConfig(nil), c.Emitters...)
	cp.Derived.EmitterIndex = make(map[string]int, len(c.Derived.EmitterIndex))
	for k, v := range c.Derived.EmitterIndex {
		cp.Derived.EmitterIndex[k] = v
	}
	return &cp
}

// Recompute refreshes derived values after fields were modified in place.
func (c *Config) Recompute() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
