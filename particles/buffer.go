// Package particles implements the lifecycle engine behind smoke and steam
// emitters: a fixed-capacity circular buffer of particle records whose slots
// move through four states (retired, active, new, free) as particles are
// emitted, uploaded, expired and recycled.
package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Noise channels. Each emitter samples every channel at a private phase offset.
const (
	channelTurbulenceX = iota
	channelTurbulenceY
	channelTurbulenceZ
	channelDuration
	numChannels
)

// Settings holds the emitter-independent tuning of a buffer.
type Settings struct {
	MaxParticlesPerSecond float64 // rate ceiling; with MaxDuration sizes the buffer
	MaxDuration           float64 // longest particle lifetime (seconds)

	InitialSpread     float64    // uniform X/Z jitter on initial velocity (m/s)
	TargetSpread      float64    // noise turbulence on target velocity (m/s)
	DurationVariation float64    // fractional duration noise (0.5 = ±50%)
	TargetVelocity    mgl32.Vec3 // emitter-local asymptotic velocity
	DecelerationTime  float64    // time constant of initial -> target blending

	IdleThreshold   float64 // rates below this emit nothing
	GraceTicks      int     // draw cycles a retired slot waits before reuse
	TextureVariants int
}

// DefaultSettings returns the reference tuning.
func DefaultSettings() Settings {
	return Settings{
		MaxParticlesPerSecond: 50,
		MaxDuration:           10,
		InitialSpread:         1,
		TargetSpread:          0.75,
		DurationVariation:     0.5,
		TargetVelocity:        mgl32.Vec3{0, 1, 0},
		DecelerationTime:      1,
		IdleThreshold:         0.1,
		GraceTicks:            2,
		TextureVariants:       DefaultTextureVariants,
	}
}

// CapacityFor returns the number of slots needed to hold maxPerSecond
// particles living maxDuration seconds.
func CapacityFor(maxPerSecond, maxDuration float64) int {
	n := int(math.Round(maxPerSecond * maxDuration))
	if n < 2 {
		// One slot is always kept empty to tell full from empty.
		n = 2
	}
	return n
}

// Cursors is a copy of the four buffer boundaries.
type Cursors struct {
	Retired int // first slot waiting out the grace period
	Active  int // first live, render-visible slot
	New     int // first slot written but not yet flushed
	Free    int // first slot available for allocation
}

// Stats holds cumulative counters and the current occupancy of a buffer.
type Stats struct {
	Emitted   int // particles written
	Retired   int // particles moved past the active cursor
	Freed     int // slots returned to the free range
	Throttled int // updates that emitted fewer particles than were due
	Flushes   int // successful non-empty flushes

	Capacity int
	Live     int // [active, new)
	Pending  int // [new, free)
	Expiring int // [retired, active)
	Free     int // slots allocatable right now
}

// Utilization is the fraction of allocatable slots in use.
func (s Stats) Utilization() float64 {
	if s.Capacity <= 1 {
		return 0
	}
	return float64(s.Capacity-1-s.Free) / float64(s.Capacity-1)
}

// Buffer is the circular particle store of one emitter.
//
// The slots partition, in cyclic order, into [retired, active) expired but
// possibly still referenced by an upload, [active, new) live, [new, free)
// written but not yet flushed, and [free, retired) free. Cursors only move
// forward.
//
// Buffer is not safe for concurrent use. A renderer on another goroutine must
// only call FlushPending and RenderableRange after Update has returned and
// through a synchronization point that orders the two.
type Buffer struct {
	settings Settings
	capacity int
	launch   mgl32.Vec3 // emitter-local launch point

	vertices  []Vertex
	expiredAt []int // draw counter value at retirement, per slot

	firstRetired int
	firstActive  int
	firstNew     int
	firstFree    int

	drawCounter  int
	lastEmission float64
	phase        [numChannels]float64

	rate            float64
	duration        float64
	initialVelocity mgl32.Vec3
	color           mgl32.Vec4

	noise Noise
	rng   Rand

	stats Stats
}

// NewBuffer creates a buffer sized from the settings' maxima.
// launch is the emitter-local point particles leave from.
func NewBuffer(settings Settings, launch mgl32.Vec3, noise Noise, rng Rand) *Buffer {
	if settings.GraceTicks < 1 {
		settings.GraceTicks = 1
	}
	if settings.TextureVariants < 1 {
		settings.TextureVariants = 1
	}
	capacity := CapacityFor(settings.MaxParticlesPerSecond, settings.MaxDuration)

	b := &Buffer{
		settings:  settings,
		capacity:  capacity,
		launch:    launch,
		vertices:  make([]Vertex, capacity*VerticesPerParticle),
		expiredAt: make([]int, capacity),
		noise:     noise,
		rng:       rng,
		color:     mgl32.Vec4{1, 1, 1, 1},
	}

	// Decorrelate emitters sharing a noise source.
	for i := range b.phase {
		b.phase[i] = rng.Float64() * 1000
	}
	return b
}

// Capacity returns the number of slots.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Settings returns the buffer's tuning.
func (b *Buffer) Settings() Settings {
	return b.settings
}

// Rate returns the configured emission rate (particles/second).
func (b *Buffer) Rate() float64 {
	return b.rate
}

// LastEmission returns the emission-time baseline.
func (b *Buffer) LastEmission() float64 {
	return b.lastEmission
}

// DrawCounter returns the number of RenderableRange calls so far.
func (b *Buffer) DrawCounter() int {
	return b.drawCounter
}

// Cursors returns the current buffer boundaries.
func (b *Buffer) Cursors() Cursors {
	return Cursors{
		Retired: b.firstRetired,
		Active:  b.firstActive,
		New:     b.firstNew,
		Free:    b.firstFree,
	}
}

// ConfigureOutput sets the kinematics used by subsequent updates.
// Rates above the configured maximum are clamped; other inputs are taken as given.
func (b *Buffer) ConfigureOutput(initialVelocity mgl32.Vec3, particlesPerSecond, duration float64, color mgl32.Vec4) {
	if ceiling := b.settings.MaxParticlesPerSecond; ceiling > 0 && particlesPerSecond > ceiling {
		particlesPerSecond = ceiling
	}
	b.initialVelocity = initialVelocity
	b.rate = particlesPerSecond
	b.duration = duration
	b.color = color
}

// Update retires expired particles, recycles slots past the grace period and
// emits the particles due since the last emission.
func (b *Buffer) Update(env Environment, pos WorldPosition, velocityHint mgl32.Vec3) {
	b.retire(env.Time)
	b.release()

	if b.rate < b.settings.IdleThreshold {
		// Track the clock while idle so re-enabling does not burst.
		b.lastEmission = env.Time
		return
	}

	due := int(math.Floor((env.Time - b.lastEmission) * b.rate))
	if due <= 0 {
		return
	}
	n := due
	if free := b.FreeCount(); n > free {
		b.stats.Throttled++
		n = free
	}
	if n == 0 {
		return
	}
	b.emit(n, env, pos, velocityHint)
}

// retire moves live particles whose expiry has passed into the retired range.
func (b *Buffer) retire(now float64) {
	for b.firstActive != b.firstNew {
		if !b.vertices[b.firstActive*VerticesPerParticle].Expired(now) {
			break
		}
		b.expiredAt[b.firstActive] = b.drawCounter
		b.firstActive = advance(b.firstActive, 1, b.capacity)
		b.stats.Retired++
	}
}

// release frees retired slots once enough draw cycles have passed that no
// pending upload can still be reading them.
func (b *Buffer) release() {
	for b.firstRetired != b.firstActive {
		if b.drawCounter-b.expiredAt[b.firstRetired] < b.settings.GraceTicks {
			break
		}
		b.firstRetired = advance(b.firstRetired, 1, b.capacity)
		b.stats.Freed++
	}
}

func (b *Buffer) emit(n int, env Environment, pos WorldPosition, velocityHint mgl32.Vec3) {
	world := pos.RenderMatrix()
	rotation := world.Mat3()
	origin := rotation.Mul3x1(b.launch).Add(world.Col(3).Vec3())
	initial := rotation.Mul3x1(b.initialVelocity).Add(velocityHint)
	target := rotation.Mul3x1(b.settings.TargetVelocity)

	s := &b.settings
	step := 1 / b.rate
	t := b.lastEmission
	for i := 0; i < n; i++ {
		t += step

		v0 := initial
		v0[0] += float32(s.InitialSpread * (b.rng.Float64()*2 - 1))
		v0[2] += float32(s.InitialSpread * (b.rng.Float64()*2 - 1))

		v1 := target
		v1[0] += float32(s.TargetSpread*b.sample(channelTurbulenceX, t)) + env.Wind.X()
		v1[1] += float32(s.TargetSpread * b.sample(channelTurbulenceY, t))
		v1[2] += float32(s.TargetSpread*b.sample(channelTurbulenceZ, t)) + env.Wind.Y()

		duration := b.duration * (1 + b.sample(channelDuration, t)*s.DurationVariation)

		b.write(b.firstFree, Vertex{
			StartPosition:   origin,
			StartTime:       t,
			InitialVelocity: v0,
			EndTime:         t + duration,
			TargetVelocity:  v1,
			TargetTime:      s.DecelerationTime,
			TileX:           int32(pos.TileX),
			TileZ:           int32(pos.TileZ),
			Texture:         uint8(b.rng.Intn(s.TextureVariants)),
			Color:           b.color,
			Random:          float32(b.rng.Float64()),
		})
		b.firstFree = advance(b.firstFree, 1, b.capacity)
		b.stats.Emitted++
	}
	b.lastEmission = t
}

func (b *Buffer) sample(channel int, t float64) float64 {
	return b.noise.Eval(t + b.phase[channel])
}

// write stores the particle's vertex records in slot, one per corner.
func (b *Buffer) write(slot int, v Vertex) {
	base := slot * VerticesPerParticle
	for corner := 0; corner < VerticesPerParticle; corner++ {
		v.Corner = uint8(corner)
		b.vertices[base+corner] = v
	}
}

// FreeCount returns the number of slots allocatable right now.
func (b *Buffer) FreeCount() int {
	return distance(advance(b.firstFree, 1, b.capacity), b.firstRetired, b.capacity)
}

// HasRenderableParticles reports whether any particle is live or pending flush.
func (b *Buffer) HasRenderableParticles() bool {
	return b.firstActive != b.firstFree
}

// PendingRange returns the written-but-unflushed slots.
func (b *Buffer) PendingRange() Range {
	return cyclicRange(b.firstNew, b.firstFree, b.capacity)
}

// FlushPending hands the pending slots to sink, one write per contiguous
// span. The pending range becomes live only if every write succeeds.
func (b *Buffer) FlushPending(sink VertexSink) error {
	pending := b.PendingRange()
	if pending.Empty() {
		return nil
	}
	for _, span := range pending.Spans() {
		if err := sink.WriteVertices(span.Start*VerticesPerParticle, b.Vertices(span)); err != nil {
			return err
		}
	}
	b.firstNew = b.firstFree
	b.stats.Flushes++
	return nil
}

// RenderableRange returns the slots the draw step should submit and counts
// one draw cycle, whether or not anything is drawn.
func (b *Buffer) RenderableRange() Range {
	b.drawCounter++
	return cyclicRange(b.firstActive, b.firstFree, b.capacity)
}

// Vertices returns the vertex records of a span. The slice aliases the
// buffer and is only valid until the next Update.
func (b *Buffer) Vertices(s Span) []Vertex {
	return b.vertices[s.Start*VerticesPerParticle : s.End()*VerticesPerParticle]
}

// Reset empties the buffer and restarts emission timing at now.
// Cumulative counters are kept.
func (b *Buffer) Reset(now float64) {
	b.firstRetired, b.firstActive, b.firstNew, b.firstFree = 0, 0, 0, 0
	b.drawCounter = 0
	for i := range b.expiredAt {
		b.expiredAt[i] = 0
	}
	b.lastEmission = now
}

// Stats returns the counters and current occupancy.
func (b *Buffer) Stats() Stats {
	s := b.stats
	s.Capacity = b.capacity
	s.Live = distance(b.firstActive, b.firstNew, b.capacity)
	s.Pending = distance(b.firstNew, b.firstFree, b.capacity)
	s.Expiring = distance(b.firstRetired, b.firstActive, b.capacity)
	s.Free = b.FreeCount()
	return s
}
