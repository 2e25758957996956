package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, t BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == t {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Saturation(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())

	calm := WindowStats{WindowEndTick: 600, UtilP90: 0.5, LiveEnd: 100}
	if got := bd.Check(calm); hasBookmark(got, BookmarkSaturation) {
		t.Error("unexpected saturation on calm window")
	}

	full := WindowStats{WindowEndTick: 1200, UtilP90: 0.99, Throttled: 12, LiveEnd: 400}
	if !hasBookmark(bd.Check(full), BookmarkSaturation) {
		t.Error("expected saturation bookmark")
	}

	// Fires once per episode.
	full.WindowEndTick = 1800
	if hasBookmark(bd.Check(full), BookmarkSaturation) {
		t.Error("saturation should not repeat while still saturated")
	}

	calm.WindowEndTick = 2400
	if !hasBookmark(bd.Check(calm), BookmarkSaturationCleared) {
		t.Error("expected saturation_cleared bookmark")
	}
}

func TestBookmarkDetector_ThrottlingAloneSaturates(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())
	got := bd.Check(WindowStats{WindowEndTick: 600, UtilP90: 0.2, Throttled: 1})
	if !hasBookmark(got, BookmarkSaturation) {
		t.Error("throttled updates should count as saturation")
	}
}

func TestBookmarkDetector_Idle(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())

	bd.Check(WindowStats{WindowEndTick: 600, LiveEnd: 50})
	got := bd.Check(WindowStats{WindowEndTick: 1200, LiveEnd: 0})
	if !hasBookmark(got, BookmarkIdle) {
		t.Error("expected idle bookmark")
	}

	got = bd.Check(WindowStats{WindowEndTick: 1800, LiveEnd: 0})
	if hasBookmark(got, BookmarkIdle) {
		t.Error("idle should fire only on the transition")
	}
}

func TestBookmarkDetector_Burst(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Emitted: 100, LiveEnd: 100})
	}

	got := bd.Check(WindowStats{WindowEndTick: 3000, Emitted: 450, LiveEnd: 300})
	if !hasBookmark(got, BookmarkBurst) {
		t.Error("expected burst bookmark")
	}
}

func TestBookmarkDetector_BurstNeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())
	bd.Check(WindowStats{Emitted: 10})

	if hasBookmark(bd.Check(WindowStats{Emitted: 1000}), BookmarkBurst) {
		t.Error("burst needs at least three windows of history")
	}
}

func TestBookmarkDetector_FlushFailure(t *testing.T) {
	bd := NewBookmarkDetector(10, DefaultBookmarkThresholds())
	got := bd.Check(WindowStats{WindowEndTick: 600, SimTimeSec: 10, FlushErrors: 3})

	if !hasBookmark(got, BookmarkFlushFailure) {
		t.Fatal("expected flush_failure bookmark")
	}
	for _, bm := range got {
		if bm.Type == BookmarkFlushFailure && (bm.Tick != 600 || bm.SimTimeSec != 10) {
			t.Errorf("bookmark = %+v, want tick 600 at 10s", bm)
		}
	}
}
