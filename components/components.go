// Package components defines ECS components for scenery emitters.
package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/pthm-cable/plume/particles"
)

// Identity names an emitter entity.
type Identity struct {
	ID   uuid.UUID // stable across telemetry files and snapshots
	Name string
	Kind string // config.KindStatic or config.KindTrack
}

// Placement holds the emitter's position for the current tick.
type Placement struct {
	Position particles.WorldPosition
}

// TrackFollower moves an entity around the track.
type TrackFollower struct {
	Angle  float64    // radians along the circle, advancing counter-clockwise seen from above
	Offset mgl32.Vec3 // emitter offset in the carriage frame (X right, Y up, Z forward)
}

// Exhaust describes an emitter's output before pulsing and scaling.
type Exhaust struct {
	Speed    float64 // launch speed along the nozzle (m/s)
	Volume   float64 // base flow (m³/s)
	Duration float64 // particle lifetime (s)
	Color    mgl32.Vec4

	PulseRate  float64 // beats per second, 0 = steady
	PulseDepth float64 // 0..1

	// Set by the exhaust schedule each tick.
	CurrentVolume float64
}

// Emitter holds the particle engine of an entity and the sink its uploads go to.
type Emitter struct {
	Emitter *particles.Emitter
	Mirror  *particles.Mirror
	Index   int // registration order; slot in per-tick telemetry samples

	// Range returned by the most recent draw cycle.
	Drawn       particles.Range
	FlushErrors int
}
