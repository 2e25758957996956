package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSaturation        BookmarkType = "saturation"
	BookmarkSaturationCleared BookmarkType = "saturation_cleared"
	BookmarkIdle              BookmarkType = "idle"
	BookmarkBurst             BookmarkType = "burst"
	BookmarkFlushFailure      BookmarkType = "flush_failure"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	SimTimeSec  float64      `csv:"sim_time" json:"sim_time"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"sim_time", b.SimTimeSec,
		"description", b.Description,
	)
}

// BookmarkThresholds configures the detector.
type BookmarkThresholds struct {
	SaturationUtil  float64 // util p90 at or above this counts as saturated
	BurstMultiplier float64 // emitted vs rolling average
	BurstMinEmitted int
}

// DefaultBookmarkThresholds returns the thresholds used when none are configured.
func DefaultBookmarkThresholds() BookmarkThresholds {
	return BookmarkThresholds{
		SaturationUtil:  0.95,
		BurstMultiplier: 2.0,
		BurstMinEmitted: 20,
	}
}

// BookmarkDetector detects interesting moments in the emitter lifecycle.
type BookmarkDetector struct {
	thresholds BookmarkThresholds

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	saturated bool
	wasLive   bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, thresholds BookmarkThresholds) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	return &BookmarkDetector{
		thresholds:  thresholds,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSaturation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkIdle(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if stats.FlushErrors > 0 {
		bookmarks = append(bookmarks, bd.bookmark(stats, BookmarkFlushFailure,
			fmt.Sprintf("%d uploads failed", stats.FlushErrors)))
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) bookmark(stats WindowStats, t BookmarkType, desc string) Bookmark {
	return Bookmark{
		Type:        t,
		Tick:        stats.WindowEndTick,
		SimTimeSec:  stats.SimTimeSec,
		Description: desc,
	}
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSaturation fires once when buffers run full and once when they recover.
func (bd *BookmarkDetector) checkSaturation(stats WindowStats) *Bookmark {
	saturated := stats.Throttled > 0 || stats.UtilP90 >= bd.thresholds.SaturationUtil
	defer func() { bd.saturated = saturated }()

	switch {
	case saturated && !bd.saturated:
		b := bd.bookmark(stats, BookmarkSaturation,
			fmt.Sprintf("Buffers saturated: util p90 %.2f, %d throttled updates", stats.UtilP90, stats.Throttled))
		return &b
	case !saturated && bd.saturated:
		b := bd.bookmark(stats, BookmarkSaturationCleared,
			fmt.Sprintf("Saturation cleared: util p90 %.2f", stats.UtilP90))
		return &b
	}
	return nil
}

// checkIdle fires when every particle has gone after a window with live ones.
func (bd *BookmarkDetector) checkIdle(stats WindowStats) *Bookmark {
	live := stats.LiveEnd > 0
	defer func() { bd.wasLive = live }()

	if bd.wasLive && !live {
		b := bd.bookmark(stats, BookmarkIdle, "All emitters idle, no live particles")
		return &b
	}
	return nil
}

// checkBurst fires when emission exceeds the rolling average by the configured multiplier.
func (bd *BookmarkDetector) checkBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Emitted
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Emitted) > avg*bd.thresholds.BurstMultiplier && stats.Emitted >= bd.thresholds.BurstMinEmitted {
		b := bd.bookmark(stats, BookmarkBurst,
			fmt.Sprintf("Emitted %d is %.1fx average (%.1f)", stats.Emitted, float64(stats.Emitted)/avg, avg))
		return &b
	}
	return nil
}
