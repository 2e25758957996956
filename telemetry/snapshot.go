package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pthm-cable/plume/particles"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the state of every emitter at one moment, for offline inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick       int32      `json:"tick"`
	SimTimeSec float64    `json:"sim_time"`
	Wind       [2]float32 `json:"wind"`

	Emitters []EmitterState `json:"emitters"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// EmitterState holds one emitter's buffer state.
type EmitterState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`

	TileX    int        `json:"tile_x"`
	TileZ    int        `json:"tile_z"`
	Location [3]float32 `json:"location"`

	Capacity     int               `json:"capacity"`
	Rate         float64           `json:"rate"`
	LastEmission float64           `json:"last_emission"`
	DrawCounter  int               `json:"draw_counter"`
	Cursors      particles.Cursors `json:"cursors"`
	Stats        particles.Stats   `json:"stats"`

	// Live particles evaluated at the snapshot time
	Particles []ParticleState `json:"particles,omitempty"`

	Lifetime *LifetimeStats `json:"lifetime,omitempty"`
}

// ParticleState is a live particle evaluated at the snapshot time.
type ParticleState struct {
	Position [3]float32 `json:"position"`
	Age      float64    `json:"age"`
	Progress float64    `json:"progress"`
	Texture  uint8      `json:"texture"`
}

// NewParticleState evaluates a particle's first vertex record at time t.
func NewParticleState(v *particles.Vertex, t float64) ParticleState {
	p := v.PositionAt(t)
	return ParticleState{
		Position: [3]float32{p.X(), p.Y(), p.Z()},
		Age:      v.Age(t),
		Progress: v.Progress(t),
		Texture:  v.Texture,
	}
}

// ErrSnapshotVersion is returned for snapshots written by a newer format.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// SnapshotName returns the file name for s: snapshot_<tick>.json, with the
// bookmark type appended when the snapshot was taken for one.
func SnapshotName(s *Snapshot) string {
	parts := []string{"snapshot", strconv.Itoa(int(s.Tick))}
	if s.Bookmark != nil {
		parts = append(parts, strings.ReplaceAll(string(s.Bookmark.Type), " ", "_"))
	}
	return strings.Join(parts, "_") + ".json"
}

// SaveSnapshot writes s as indented JSON into dir and returns the file path.
func SaveSnapshot(s *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(dir, SnapshotName(s))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := errors.Join(enc.Encode(s), f.Close()); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var s Snapshot
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("%s: version %d: %w", path, s.Version, ErrSnapshotVersion)
	}
	return &s, nil
}
