package game

import (
	"slices"
	"strings"
	"time"
)

// costWindow is how many updates each emitter's cost is averaged over.
const costWindow = 120

// costRing holds the most recent update durations of one emitter.
type costRing struct {
	d     [costWindow]time.Duration
	next  int
	count int
	sum   time.Duration
}

func (r *costRing) add(d time.Duration) {
	if r.count == costWindow {
		r.sum -= r.d[r.next]
	} else {
		r.count++
	}
	r.d[r.next] = d
	r.sum += d
	r.next = (r.next + 1) % costWindow
}

func (r *costRing) avg() time.Duration {
	if r.count == 0 {
		return 0
	}
	return r.sum / time.Duration(r.count)
}

// PerfStats tracks recent update cost per emitter.
type PerfStats struct {
	rings map[string]*costRing
}

// NewPerfStats creates an empty cost tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{rings: make(map[string]*costRing)}
}

// Record adds an update duration for the named emitter.
func (p *PerfStats) Record(name string, d time.Duration) {
	r, ok := p.rings[name]
	if !ok {
		r = &costRing{}
		p.rings[name] = r
	}
	r.add(d)
}

// Avg returns the named emitter's average update cost.
func (p *PerfStats) Avg(name string) time.Duration {
	if r, ok := p.rings[name]; ok {
		return r.avg()
	}
	return 0
}

// Total returns the summed average cost of all emitters.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for _, r := range p.rings {
		total += r.avg()
	}
	return total
}

// SortedNames returns emitter names, most expensive first, ties by name.
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.rings))
	for name := range p.rings {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if ca, cb := p.Avg(a), p.Avg(b); ca != cb {
			if ca > cb {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	return names
}
