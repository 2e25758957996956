package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/plume/config"
)

// csvLog is an append-only CSV file whose header is written with the first row.
type csvLog struct {
	name   string
	f      *os.File
	header bool
}

func openCSVLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, f: f}, nil
}

// appendRows writes rows, preceded by the header on first use.
func appendRows[T any](l *csvLog, rows []T) error {
	var err error
	if l.header {
		err = gocsv.MarshalWithoutHeaders(rows, l.f)
	} else {
		err = gocsv.Marshal(rows, l.f)
		l.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	return nil
}

// OutputManager writes a run's telemetry into one directory:
// telemetry.csv, perf.csv, bookmarks.csv, emitters.csv, config.yaml and
// snapshots/.
type OutputManager struct {
	dir       string
	telemetry *csvLog
	perf      *csvLog
	bookmarks *csvLog
}

// NewOutputManager creates the output directory and opens the CSV logs.
// Returns nil if dir is empty (output disabled); every method is a no-op on nil.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, open := range []struct {
		dst  **csvLog
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	} {
		l, err := openCSVLog(dir, open.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*open.dst = l
	}
	return om, nil
}

// WriteConfig saves the run's configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return appendRows(om.telemetry, []WindowStats{stats})
}

// WritePerf appends the perf stats of the window ending at windowEnd to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return appendRows(om.perf, []PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return appendRows(om.bookmarks, []Bookmark{b})
}

// WriteEmitters saves per-emitter lifetime stats to emitters.csv,
// replacing any earlier copy.
func (om *OutputManager) WriteEmitters(stats []*LifetimeStats) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "emitters.csv"))
	if err != nil {
		return fmt.Errorf("creating emitters.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(stats, f); err != nil {
		return fmt.Errorf("writing emitters.csv: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// SnapshotDir returns the directory bookmark snapshots go to.
func (om *OutputManager) SnapshotDir() string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, "snapshots")
}

// Close closes every open CSV log.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, l := range []*csvLog{om.telemetry, om.perf, om.bookmarks} {
		if l != nil {
			errs = append(errs, l.f.Close())
		}
	}
	return errors.Join(errs...)
}
