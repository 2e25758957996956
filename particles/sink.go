package particles

import (
	"errors"
	"fmt"
)

// ErrShortWrite is returned by a sink that cannot hold a write.
var ErrShortWrite = errors.New("particles: write exceeds sink capacity")

// VertexSink receives flushed vertex records. offset is the index of the
// first vertex in buffer order; src is only valid for the duration of the call.
type VertexSink interface {
	WriteVertices(offset int, src []Vertex) error
}

// Mirror is a CPU-side copy of a buffer's vertex array, laid out exactly like
// a GPU vertex buffer would be. The draw step reads renderable spans from it.
type Mirror struct {
	vertices []Vertex
	writes   int
	written  int
}

// NewMirror creates a mirror for a buffer with the given slot capacity.
func NewMirror(capacity int) *Mirror {
	return &Mirror{vertices: make([]Vertex, capacity*VerticesPerParticle)}
}

// WriteVertices copies src into the mirror at offset.
func (m *Mirror) WriteVertices(offset int, src []Vertex) error {
	if offset < 0 || offset+len(src) > len(m.vertices) {
		return fmt.Errorf("%w: offset %d + %d > %d", ErrShortWrite, offset, len(src), len(m.vertices))
	}
	copy(m.vertices[offset:], src)
	m.writes++
	m.written += len(src)
	return nil
}

// Vertices returns the mirrored records of a span.
func (m *Mirror) Vertices(s Span) []Vertex {
	return m.vertices[s.Start*VerticesPerParticle : s.End()*VerticesPerParticle]
}

// Writes returns the number of successful writes.
func (m *Mirror) Writes() int {
	return m.writes
}

// Written returns the total number of vertex records copied.
func (m *Mirror) Written() int {
	return m.written
}
