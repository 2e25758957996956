package particles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceAndDistance(t *testing.T) {
	assert.Equal(t, 3, advance(1, 2, 10))
	assert.Equal(t, 1, advance(8, 3, 10))
	assert.Equal(t, 0, advance(9, 1, 10))

	assert.Equal(t, 0, distance(4, 4, 10))
	assert.Equal(t, 3, distance(8, 1, 10))
	assert.Equal(t, 9, distance(1, 0, 10))
}

func TestCyclicRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     Range
	}{
		{"empty", 4, 4, Range{}},
		{"contiguous", 2, 6, Range{First: Span{Start: 2, Count: 4}}},
		{"ends at array end", 7, 0, Range{First: Span{Start: 7, Count: 3}}},
		{"wraps", 7, 2, Range{First: Span{Start: 7, Count: 3}, Second: Span{Start: 0, Count: 2}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := cyclicRange(tc.from, tc.to, 10)
			assert.Equal(t, tc.want, r)
			assert.Equal(t, distance(tc.from, tc.to, 10), r.Count())
		})
	}
}

func TestRangeSpansSkipsEmpty(t *testing.T) {
	assert.Empty(t, Range{}.Spans())
	assert.Len(t, Range{First: Span{Start: 3, Count: 1}}.Spans(), 1)
	assert.Len(t, Range{First: Span{Start: 8, Count: 2}, Second: Span{Start: 0, Count: 1}}.Spans(), 2)
}
