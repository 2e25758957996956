package particles

// Span is a contiguous run of particle slots.
type Span struct {
	Start int // first slot
	Count int // number of slots
}

// End returns the slot one past the span.
func (s Span) End() int {
	return s.Start + s.Count
}

// Range is a cyclic slot range split at the array end.
// Second is empty unless the range wraps.
type Range struct {
	First  Span
	Second Span
}

// Count returns the total number of slots in the range.
func (r Range) Count() int {
	return r.First.Count + r.Second.Count
}

// Empty reports whether the range holds no slots.
func (r Range) Empty() bool {
	return r.Count() == 0
}

// Spans returns the non-empty spans in cyclic order.
func (r Range) Spans() []Span {
	spans := make([]Span, 0, 2)
	if r.First.Count > 0 {
		spans = append(spans, r.First)
	}
	if r.Second.Count > 0 {
		spans = append(spans, r.Second)
	}
	return spans
}

// advance moves idx forward by n slots modulo capacity.
func advance(idx, n, capacity int) int {
	return ((idx+n)%capacity + capacity) % capacity
}

// distance is the number of forward steps from a to b modulo capacity.
func distance(a, b, capacity int) int {
	return ((b-a)%capacity + capacity) % capacity
}

// cyclicRange splits [from, to) into at most two contiguous spans.
func cyclicRange(from, to, capacity int) Range {
	switch {
	case from == to:
		return Range{}
	case from < to:
		return Range{First: Span{Start: from, Count: to - from}}
	default:
		r := Range{First: Span{Start: from, Count: capacity - from}}
		if to > 0 {
			r.Second = Span{Start: 0, Count: to}
		}
		return r
	}
}
