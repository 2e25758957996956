package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Emitters int `csv:"emitters"`

	// Lifecycle counters summed over emitters during the window
	Emitted     int `csv:"emitted"`
	Retired     int `csv:"retired"`
	Freed       int `csv:"freed"`
	Throttled   int `csv:"throttled"`
	Flushes     int `csv:"flushes"`
	FlushErrors int `csv:"flush_errors"`

	// Live particles over all emitters, sampled every tick
	LiveEnd  int     `csv:"live_end"`
	LiveMean float64 `csv:"live_mean"`
	LiveStd  float64 `csv:"live_std"`
	LiveP10  float64 `csv:"live_p10"`
	LiveP50  float64 `csv:"live_p50"`
	LiveP90  float64 `csv:"live_p90"`

	// Per-emitter buffer utilization, sampled every tick
	UtilMean float64 `csv:"util_mean"`
	UtilP90  float64 `csv:"util_p90"`
	UtilMax  float64 `csv:"util_max"`

	// Environment
	WindMean   float64 `csv:"wind_mean"`
	WindMax    float64 `csv:"wind_max"`
	VolumeMean float64 `csv:"volume_mean"` // total exhaust flow m³/s
}

// ThrottleFraction is the share of emitter updates that could not emit
// everything that was due.
func (s WindowStats) ThrottleFraction(ticks int32) float64 {
	if ticks <= 0 || s.Emitters == 0 {
		return 0
	}
	return float64(s.Throttled) / float64(int(ticks)*s.Emitters)
}

// Summary describes a sample distribution.
type Summary struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
	Max  float64
}

// Summarize computes mean, standard deviation and quantiles of values.
// values is not modified. Returns the zero Summary for an empty slice.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	s.Max = sorted[n-1]
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("emitters", s.Emitters),
		slog.Int("emitted", s.Emitted),
		slog.Int("retired", s.Retired),
		slog.Int("freed", s.Freed),
		slog.Int("throttled", s.Throttled),
		slog.Int("flushes", s.Flushes),
		slog.Int("flush_errors", s.FlushErrors),
		slog.Int("live_end", s.LiveEnd),
		slog.Float64("live_mean", s.LiveMean),
		slog.Float64("live_std", s.LiveStd),
		slog.Float64("live_p10", s.LiveP10),
		slog.Float64("live_p50", s.LiveP50),
		slog.Float64("live_p90", s.LiveP90),
		slog.Float64("util_mean", s.UtilMean),
		slog.Float64("util_p90", s.UtilP90),
		slog.Float64("util_max", s.UtilMax),
		slog.Float64("wind_mean", s.WindMean),
		slog.Float64("wind_max", s.WindMax),
		slog.Float64("volume_mean", s.VolumeMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"emitted", s.Emitted,
		"retired", s.Retired,
		"freed", s.Freed,
		"throttled", s.Throttled,
		"flush_errors", s.FlushErrors,
		"live_end", s.LiveEnd,
		"live_mean", s.LiveMean,
		"live_p90", s.LiveP90,
		"util_p90", s.UtilP90,
		"util_max", s.UtilMax,
		"wind_mean", s.WindMean,
		"volume_mean", s.VolumeMean,
	)
}
