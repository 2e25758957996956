package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/plume/config"
	"github.com/pthm-cable/plume/telemetry"
)

func newHeadlessGame(t *testing.T, opts Options) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	opts.Config = cfg
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	SetLogWriter(&discard{})
	t.Cleanup(func() { SetLogWriter(nil) })
	return NewGameWithOptions(opts)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func runTicks(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.step()
	}
}

func TestHeadlessRunEmitsAndDraws(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newHeadlessGame(t, Options{
		StatsWindowSec: 1,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	if got := len(g.Emitters()); got != 3 {
		t.Fatalf("emitters = %d, want 3", got)
	}

	runTicks(g, 300) // 5 s at 60 Hz

	if g.Tick() != 300 {
		t.Errorf("tick = %d, want 300", g.Tick())
	}
	if len(windows) < 4 {
		t.Errorf("flushed %d windows, want at least 4", len(windows))
	}

	emitted := 0
	for _, w := range windows {
		emitted += w.Emitted
	}
	if emitted == 0 {
		t.Error("no particles emitted")
	}
	if g.DrawnParticles() == 0 {
		t.Error("last draw cycle submitted no particles")
	}

	for _, e := range g.Emitters() {
		ident, _, _, emitter := g.EmitterState(e)
		st := emitter.Emitter.Stats()
		if st.Live+st.Pending+st.Expiring+st.Free != st.Capacity-1 {
			t.Errorf("%s: regions %d+%d+%d+%d do not partition capacity %d",
				ident.Name, st.Live, st.Pending, st.Expiring, st.Free, st.Capacity)
		}
		if st.Pending != 0 {
			t.Errorf("%s: %d particles left pending after flush", ident.Name, st.Pending)
		}
		if emitter.FlushErrors != 0 {
			t.Errorf("%s: %d flush errors", ident.Name, emitter.FlushErrors)
		}
	}
}

func TestTrackEmittersMove(t *testing.T) {
	g := newHeadlessGame(t, Options{})

	var start []float32
	for _, e := range g.Emitters() {
		_, placement, _, _ := g.EmitterState(e)
		start = append(start, placement.Position.Location.X(), placement.Position.Location.Z())
	}

	runTicks(g, 60)

	for i, e := range g.Emitters() {
		ident, placement, _, _ := g.EmitterState(e)
		moved := placement.Position.Location.X() != start[2*i] || placement.Position.Location.Z() != start[2*i+1]
		switch ident.Kind {
		case config.KindTrack:
			if !moved {
				t.Errorf("%s: track emitter did not move", ident.Name)
			}
		case config.KindStatic:
			if moved {
				t.Errorf("%s: static emitter moved", ident.Name)
			}
		}
	}
}

func TestVolumeScaleZeroGoesIdle(t *testing.T) {
	g := newHeadlessGame(t, Options{})
	runTicks(g, 60)

	g.SetVolumeScale(0)
	runTicks(g, 10)

	for _, ls := range g.Lifetime() {
		if !ls.Idle() {
			t.Errorf("%s: not idle with zero volume", ls.Name)
		}
	}
	for _, e := range g.Emitters() {
		ident, _, exhaust, emitter := g.EmitterState(e)
		if exhaust.CurrentVolume != 0 {
			t.Errorf("%s: volume = %v, want 0", ident.Name, exhaust.CurrentVolume)
		}
		if r := emitter.Emitter.Buffer().Rate(); r != 0 {
			t.Errorf("%s: rate = %v, want 0", ident.Name, r)
		}
	}

	g.SetVolumeScale(-1)
	if g.VolumeScale() != 0 {
		t.Errorf("negative scale = %v, want clamp to 0", g.VolumeScale())
	}
}

func TestPausedStepFreezesTime(t *testing.T) {
	g := newHeadlessGame(t, Options{})
	runTicks(g, 30)

	g.SetPaused(true)
	now := g.Now()
	runTicks(g, 5)

	if g.Now() != now {
		t.Errorf("paused clock moved from %v to %v", now, g.Now())
	}
	if !g.Paused() {
		t.Error("Paused() = false after SetPaused(true)")
	}

	g.SetPaused(false)
	runTicks(g, 1)
	if g.Now() <= now {
		t.Errorf("clock did not resume: %v", g.Now())
	}
}

func TestLifetimeTracksEmitters(t *testing.T) {
	g := newHeadlessGame(t, Options{})
	runTicks(g, 120)

	lifetimes := g.Lifetime()
	if len(lifetimes) != 3 {
		t.Fatalf("lifetime entries = %d, want 3", len(lifetimes))
	}
	for _, ls := range lifetimes {
		if ls.FirstEmissionTick < 0 {
			t.Errorf("%s: never emitted", ls.Name)
		}
		if ls.Emitted == 0 || ls.PeakLive == 0 {
			t.Errorf("%s: emitted %d peak %d", ls.Name, ls.Emitted, ls.PeakLive)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := newHeadlessGame(t, Options{SnapshotDir: dir})
	runTicks(g, 120)

	g.saveSnapshot(nil)

	path := filepath.Join(dir, "snapshot_120.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}

	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snap.Tick != 120 {
		t.Errorf("tick = %d, want 120", snap.Tick)
	}
	if len(snap.Emitters) != 3 {
		t.Fatalf("emitters = %d, want 3", len(snap.Emitters))
	}

	particles := 0
	for _, es := range snap.Emitters {
		particles += len(es.Particles)
		if es.Capacity == 0 {
			t.Errorf("%s: zero capacity", es.Name)
		}
	}
	if particles == 0 {
		t.Error("snapshot holds no particles")
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	g := newHeadlessGame(t, Options{OutputDir: dir, StatsWindowSec: 1})
	runTicks(g, 120)
	g.Unload()

	for _, name := range []string{"telemetry.csv", "perf.csv", "emitters.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestPerfStatsSortedNames(t *testing.T) {
	p := NewPerfStats()
	p.Record("b", 2)
	p.Record("a", 2)
	p.Record("c", 5)

	got := p.SortedNames()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedNames = %v, want %v", got, want)
		}
	}
	if p.Total() != 9 {
		t.Errorf("Total = %v, want 9", p.Total())
	}
}

func TestPerfStatsWindow(t *testing.T) {
	p := NewPerfStats()
	for i := 0; i < costWindow; i++ {
		p.Record("stack", 10)
	}
	for i := 0; i < costWindow; i++ {
		p.Record("stack", 2)
	}
	if got := p.Avg("stack"); got != 2 {
		t.Errorf("avg after window rolled = %v, want 2", got)
	}
	if got := p.Avg("missing"); got != 0 {
		t.Errorf("avg of unknown emitter = %v, want 0", got)
	}
}
